// Command hlsparse parses an M3U8 playlist file and prints a summary or
// its JSON representation, for inspecting playlists from the command line
// without standing up the full proxy service.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/streamforge/hlsplaylist/pkg/m3u8"
)

func main() {
	jsonOutput := flag.Bool("json", false, "print the parsed playlist as JSON instead of a summary")
	rewrite := flag.Bool("write", false, "re-serialize the parsed playlist back to M3U8 text")
	baseURI := flag.String("base-uri", "", "base URI to resolve relative segment/variant URIs against")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: hlsparse [-json|-write] [-base-uri URI] <playlist.m3u8>")
		os.Exit(2)
	}

	content, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading %s: %v\n", args[0], err)
		os.Exit(1)
	}

	sessionID := uuid.New().String()

	pl, err := m3u8.ParseDefault(string(content), *baseURI)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[%s] parsing %s: %v\n", sessionID, args[0], err)
		os.Exit(1)
	}

	switch {
	case *rewrite:
		fmt.Print(m3u8.Write(pl))
	case *jsonOutput:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(pl); err != nil {
			fmt.Fprintf(os.Stderr, "encoding JSON: %v\n", err)
			os.Exit(1)
		}
	default:
		printSummary(pl)
	}
}

func printSummary(pl *m3u8.Playlist) {
	fmt.Printf("version: %d\n", pl.Version)
	if pl.IsMaster {
		fmt.Printf("type: master\n")
		fmt.Printf("variants: %d\n", len(pl.Playlists))
		for _, v := range pl.Playlists {
			kind := "variant"
			if v.IsIFrame {
				kind = "iframe"
			}
			fmt.Printf("  - %s bandwidth=%d uri=%s\n", kind, v.StreamInfo.Bandwidth, v.URI)
		}
		fmt.Printf("media: %d\n", len(pl.Media))
		return
	}

	fmt.Printf("type: media\n")
	if pl.TargetDuration != nil {
		fmt.Printf("target_duration: %d\n", *pl.TargetDuration)
	}
	fmt.Printf("media_sequence: %d\n", pl.MediaSequence)
	fmt.Printf("segments: %d\n", len(pl.Segments))
	fmt.Printf("ended: %v\n", pl.IsEndlist)
}
