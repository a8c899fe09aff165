package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// ValidationError lists the required fields that were missing or blank.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// Validate runs the struct tags of v and turns validator errors into a ValidationError.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return &ValidationError{Fields: fields}
}

// NewImageRecord validates the four required fields and returns an unsaved record.
func NewImageRecord(url, assetID, contributorName, filename string) (*ImageRecord, error) {
	req := SaveImageRequest{
		URL:             url,
		AssetID:         assetID,
		ContributorName: contributorName,
		Filename:        filename,
	}
	if err := Validate(req); err != nil {
		return nil, err
	}
	return &ImageRecord{
		URL:             url,
		AssetID:         assetID,
		ContributorName: strings.TrimSpace(contributorName),
		Filename:        filename,
	}, nil
}
