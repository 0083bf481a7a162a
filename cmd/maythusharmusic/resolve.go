package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var detailsCmd = &cobra.Command{
	Use:   "details <link>",
	Short: "Resolve title, duration and thumbnail for a video",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		isID, _ := cmd.Flags().GetBool("video-id")

		md := engine.Details(cmd.Context(), args[0], isID)
		if md.Empty() {
			return fmt.Errorf("no metadata found for %q", args[0])
		}

		if flagJSON {
			return printJSON(md)
		}
		fmt.Println("Title:    ", md.Title)
		fmt.Println("Duration: ", md.DurationText)
		fmt.Println("ID:       ", md.ID)
		fmt.Println("Thumbnail:", md.Thumbnail)
		return nil
	},
}

var trackCmd = &cobra.Command{
	Use:   "track <query>",
	Short: "Resolve a search query into one playable track",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		isID, _ := cmd.Flags().GetBool("video-id")
		query := strings.Join(args, " ")

		info := engine.Track(cmd.Context(), query, isID)
		if info.VidID == "" {
			return fmt.Errorf("no track found for %q", query)
		}

		if flagJSON {
			return printJSON(info)
		}
		fmt.Println("Title:   ", info.Title)
		fmt.Println("Link:    ", info.Link)
		fmt.Println("Duration:", info.DurationMin)
		return nil
	},
}

var sliderCmd = &cobra.Command{
	Use:   "slider <link>",
	Short: "Pick the n-th entry of a related-video lookup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		isID, _ := cmd.Flags().GetBool("video-id")
		index, _ := cmd.Flags().GetInt("index")

		entry := engine.Slider(cmd.Context(), args[0], index, isID)
		if entry.ID == "" {
			return fmt.Errorf("no related entry at index %d", index)
		}

		if flagJSON {
			return printJSON(entry)
		}
		fmt.Println("Title:   ", entry.Title)
		fmt.Println("Duration:", entry.DurationText)
		fmt.Println("ID:      ", entry.ID)
		return nil
	},
}

var formatsCmd = &cobra.Command{
	Use:   "formats <link>",
	Short: "List the available encodings for a video",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		isID, _ := cmd.Flags().GetBool("video-id")
		probe, _ := cmd.Flags().GetString("probe")

		if probe != "" {
			size, err := engine.ProbeFilesize(cmd.Context(), args[0], isID, probe)
			if err != nil {
				return err
			}
			fmt.Printf("%s: %d bytes\n", probe, size)
			return nil
		}

		entries := engine.Formats(cmd.Context(), args[0], isID)
		if len(entries) == 0 {
			return fmt.Errorf("no formats found for %q", args[0])
		}

		if flagJSON {
			return printJSON(entries)
		}
		for _, e := range entries {
			size := "?"
			if e.Filesize != nil {
				size = fmt.Sprintf("%d", *e.Filesize)
			}
			fmt.Printf("%-8s %-6s %-12s %10s  %s\n", e.FormatID, e.Ext, e.Note, size, e.Format)
		}
		return nil
	},
}

var playlistCmd = &cobra.Command{
	Use:   "playlist <link>",
	Short: "Enumerate the video ids of a playlist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		isID, _ := cmd.Flags().GetBool("video-id")
		limit, _ := cmd.Flags().GetInt("limit")

		ids, err := engine.Playlist(cmd.Context(), args[0], isID, limit)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(ids)
		}
		for _, id := range ids {
			fmt.Println(id)
		}
		return nil
	},
}

var streamCmd = &cobra.Command{
	Use:   "stream <link>",
	Short: "Resolve a directly playable stream URL without downloading",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		isID, _ := cmd.Flags().GetBool("video-id")

		url, err := engine.VideoURL(cmd.Context(), args[0], isID)
		if err != nil {
			return err
		}
		fmt.Println(url)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{detailsCmd, trackCmd, sliderCmd, formatsCmd, playlistCmd, streamCmd} {
		c.Flags().Bool("video-id", false, "Treat the argument as a bare video (or playlist) id")
	}
	sliderCmd.Flags().Int("index", 0, "Which related entry to pick (0-9)")
	formatsCmd.Flags().String("probe", "", "Probe the byte size of one format id instead of listing")
	playlistCmd.Flags().Int("limit", 25, "Maximum number of ids to enumerate")
}
