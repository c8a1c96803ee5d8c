// Copyright 2022 Satoshi Toyosawa
// SPDX-License-Identifier: MIT

// Command jpegmeta prints the metadata of JPEG files: the segment
// table, the JFIF record and the Exif entries.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/stoyosawa/jpegmeta"
)

var (
	segmentsOnly = flag.Bool("segments", false, "print the segment table only")
	jfifOnly     = flag.Bool("jfif", false, "print the JFIF record only")
	exifOnly     = flag.Bool("exif", false, "print the Exif entries only")
)

func main() {
	log.SetFlags(0)
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: jpegmeta [flags] file...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	all := !*segmentsOnly && !*jfifOnly && !*exifOnly

	for _, name := range flag.Args() {
		if err := printFile(name, all); err != nil {
			log.Fatal(err)
		}
	}
}

func printFile(name string, all bool) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	segs, err := jpegmeta.DecodeSegments(f)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	fmt.Printf("== %s\n", name)

	if all || *segmentsOnly {
		for _, s := range segs {
			label := s.Name
			if label == "" {
				label = "?"
			}
			fmt.Printf("%-6s 0x%04x %6d bytes\n", label, s.Marker, len(s.Data))
		}
	}

	if all || *jfifOnly {
		j, err := segs.JFIF()
		switch {
		case errors.Is(err, jpegmeta.ErrSegmentNotFound):
			// No JFIF record.
		case err != nil:
			return fmt.Errorf("%s: %w", name, err)
		default:
			fmt.Printf("JFIF %s, %s, density %dx%d, thumbnail %dx%d\n",
				j.Version(), j.Units, j.XDensity, j.YDensity, j.XThumbnail, j.YThumbnail)
		}
	}

	if all || *exifOnly {
		x, err := segs.Exif()
		switch {
		case errors.Is(err, jpegmeta.ErrSegmentNotFound):
			// No Exif block.
		case err != nil:
			return fmt.Errorf("%s: %w", name, err)
		default:
			fmt.Printf("Exif %v, first IFD at %d, %d entries\n",
				x.ByteOrder, x.FirstIFDOffset, x.EntryCount)
			for _, e := range x.Entries {
				fmt.Println(e)
			}
			if text, ok, err := x.UserComment(); ok && err == nil && text != "" {
				fmt.Printf("UserComment text: %s\n", text)
			}
		}
	}

	return nil
}
