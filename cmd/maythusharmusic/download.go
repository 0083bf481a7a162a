package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/maythusharfavemygirlv1/maythusharmusic/pkg/models"
)

var downloadCmd = &cobra.Command{
	Use:   "download <link>",
	Short: "Acquire media for a video",
	Long: `Download acquires media for a video. The default profile is best audio;
--video fetches a capped-resolution mp4. The format-specific profiles
--song-audio and --song-video require --format-id and name the output after
--title when one is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := models.DownloadRequest{Link: args[0]}
		req.VideoID, _ = cmd.Flags().GetBool("video-id")
		req.Video, _ = cmd.Flags().GetBool("video")
		req.SongAudio, _ = cmd.Flags().GetBool("song-audio")
		req.SongVideo, _ = cmd.Flags().GetBool("song-video")
		req.FormatID, _ = cmd.Flags().GetString("format-id")
		req.Title, _ = cmd.Flags().GetString("title")

		res, err := engine.Download(cmd.Context(), req)
		if err != nil {
			return err
		}

		if res.Local {
			fmt.Println(res.Location)
		} else {
			fmt.Println("stream:", res.Location)
		}
		return nil
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove stale files from the download directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ttl, _ := cmd.Flags().GetDuration("ttl")

		removed, err := engine.Clean(ttl)
		if err != nil {
			return err
		}
		fmt.Printf("removed %d file(s)\n", removed)
		return nil
	},
}

func init() {
	downloadCmd.Flags().Bool("video-id", false, "Treat the argument as a bare video id")
	downloadCmd.Flags().Bool("video", false, "Acquire video instead of audio")
	downloadCmd.Flags().Bool("song-audio", false, "Format-specific audio with transcode and embedded tags")
	downloadCmd.Flags().Bool("song-video", false, "Format-specific video merged with a companion audio track")
	downloadCmd.Flags().String("format-id", "", "Encoding id from the formats command")
	downloadCmd.Flags().String("title", "", "Title used to name format-specific outputs")

	cleanCmd.Flags().Duration("ttl", time.Hour, "Remove files older than this")
}
