package main

import (
	"fmt"

	"guestgallery/gallery"
	"guestgallery/ui"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the guestbook settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(appConfig)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.FormatMuted("# "+configPath))
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting (api_base_url, cache_dir, default_sort, upload_folder, guest_name, picker_root)",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	switch key {
	case "api_base_url":
		appConfig.APIBaseURL = value
	case "cache_dir":
		appConfig.CacheDir = value
	case "default_sort":
		if _, err := gallery.ParseSortMode(value); err != nil {
			return err
		}
		appConfig.DefaultSort = value
	case "upload_folder":
		appConfig.UploadFolder = value
	case "guest_name":
		appConfig.GuestName = value
	case "picker_root":
		appConfig.PickerRoot = value
	default:
		return fmt.Errorf("unknown setting %q", key)
	}

	if err := appConfig.Save(configPath); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), ui.FormatSuccess(fmt.Sprintf("%s set to %s", key, value)))
	return nil
}
