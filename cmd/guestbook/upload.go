package main

import (
	"fmt"
	"io"

	"guestgallery/gallery"
	"guestgallery/session"
	"guestgallery/ui"
	"guestgallery/upload"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

var (
	uploadName string
	uploadCopy bool
)

var uploadCmd = &cobra.Command{
	Use:   "upload [path]",
	Short: "Share a photo with the gallery",
	Long: `Share a photo with the gallery.

Without a path a fuzzy finder lists the jpg, jpeg, png, heic and heif files below the
configured picker root. Your name is asked once and remembered for the next upload.

Examples:
  guestbook upload ./first-dance.jpg
  guestbook upload --name "Aunt May"
  guestbook upload cake.heic --copy`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().StringVarP(&uploadName, "name", "n", "", "Name shown next to your photo")
	uploadCmd.Flags().BoolVar(&uploadCopy, "copy", false, "Copy the photo URL to the clipboard")
}

func runUpload(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	ctx := getContext()

	var picker upload.Picker = upload.FuzzyPicker{Root: appConfig.PickerRoot}
	if len(args) == 1 {
		picker = upload.PathPicker(args[0])
	}

	name := appConfig.GuestName
	if cmd.Flags().Changed("name") {
		name = uploadName
	}

	sess := session.New(session.Options{
		API:       apiClient,
		CacheSlot: cacheSlot(cmd),
		Painter:   gallery.NopPainter{},
		Prompter:  ui.TerminalPrompter{In: cmd.InOrStdin(), Out: out},
		Widget: &upload.FileWidget{
			Picker:   picker,
			Uploader: apiClient,
			Folder:   appConfig.UploadFolder,
		},
		GuestName: name,
		Acknowledge: func(msg string) {
			fmt.Fprintln(out, ui.FormatSuccess(msg))
		},
	})
	if err := sess.Renderer.Load(ctx); err != nil {
		fmt.Fprintln(out, ui.FormatWarning("Could not load the gallery, your photo will still be shared."))
	}

	res, err := sess.Uploads.Start(ctx)
	if err != nil {
		fmt.Fprintln(out, ui.FormatError("A name is needed to share photos."))
		return err
	}

	switch res.Outcome {
	case upload.OutcomeCancelled:
		fmt.Fprintln(out, ui.FormatInfo("Upload cancelled."))
		return nil
	case upload.OutcomeFailed:
		fmt.Fprintln(out, ui.FormatError("Upload failed: "+res.Err.Error()))
		return res.Err
	}

	view := sess.Renderer.Snapshot().View
	fmt.Fprintln(out, ui.FormatInfo(res.Info.URL))
	fmt.Fprintln(out, ui.FormatMuted(view.CountLabel()+" in the gallery"))
	if uploadCopy {
		if err := clipboard.WriteAll(res.Info.URL); err != nil {
			fmt.Fprintln(out, ui.FormatWarning("Could not copy to the clipboard: "+err.Error()))
		} else {
			fmt.Fprintln(out, ui.FormatMuted("URL copied to the clipboard."))
		}
	}

	rememberGuest(out, sess.GuestName())

	if err := sess.Close(); err != nil {
		fmt.Fprintln(out, ui.FormatWarning("Your photo was uploaded but could not be added to the gallery list."))
		return err
	}
	return nil
}

// rememberGuest stores the name so the next upload does not ask again.
func rememberGuest(out io.Writer, name string) {
	if name == "" || name == appConfig.GuestName {
		return
	}
	appConfig.GuestName = name
	if err := appConfig.Save(configPath); err != nil {
		fmt.Fprintln(out, ui.FormatWarning("Could not remember your name: "+err.Error()))
	}
}
