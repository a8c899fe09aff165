package main

import (
	"fmt"
	"strconv"

	"guestgallery/ui"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check that the gallery and its database are reachable",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.FormatMuted("API: "+appConfig.APIBaseURL))

	status, err := apiClient.TestConnection(getContext())
	if status == nil {
		fmt.Fprintln(out, ui.FormatError("Gallery unreachable: "+err.Error()))
		return err
	}
	if err != nil {
		msg := status.Message
		if msg == "" {
			msg = err.Error()
		}
		fmt.Fprintln(out, ui.FormatError(msg))
		if status.Error != "" {
			fmt.Fprintln(out, ui.FormatMuted(status.Error))
		}
		return err
	}

	fmt.Fprintln(out, ui.FormatSuccess(status.Message))
	t := ui.NewTable(ui.Column{Header: "Driver"}, ui.Column{Header: "Photos"})
	t.AddRow(status.Driver, strconv.FormatInt(status.ImagesCount, 10))
	fmt.Fprintln(out, t.Render())
	return nil
}
