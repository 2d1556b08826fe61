// Package chart は、サイクルの進捗をSVGで可視化する機能を提供します。
package chart

import (
	"fmt"
	"strings"
)

// Bar holds one goal's label and progress for rendering.
type Bar struct {
	Label    string
	Progress float64 // 0-100
}

// Options configures rendering parameters.
type Options struct {
	BarWidth   int    // width of the progress track (px)
	BarHeight  int    // height of each bar (px)
	BarPadding int    // padding between bars (px)
	LabelWidth int    // horizontal space reserved for labels (px)
	FontSize   int    // font size for labels (px)
	FontFamily string // font family for labels
	TrackColor string // background color of the track
	FillColor  string // fill color of the progress portion
	Title      string // cycle name rendered above the bars
}

// GenerateProgressChartSVG generates an SVG bar chart with one horizontal
// bar per goal. Bars are rendered in the order given.
func GenerateProgressChartSVG(bars []Bar, opts *Options) string {
	// default options
	if opts == nil {
		opts = &Options{}
	}
	if opts.BarWidth == 0 {
		opts.BarWidth = 320
	}
	if opts.BarHeight == 0 {
		opts.BarHeight = 18
	}
	if opts.BarPadding == 0 {
		opts.BarPadding = 8
	}
	if opts.LabelWidth == 0 {
		opts.LabelWidth = 160
	}
	if opts.FontSize == 0 {
		opts.FontSize = 11
	}
	if opts.FontFamily == "" {
		opts.FontFamily = "sans-serif"
	}
	if opts.TrackColor == "" {
		opts.TrackColor = "#f0f0f0"
	}
	if opts.FillColor == "" {
		opts.FillColor = "#239a3b"
	}

	if len(bars) == 0 {
		return ""
	}

	titleHeight := 0
	if opts.Title != "" {
		titleHeight = opts.FontSize + 8 // title text + padding
	}

	percentWidth := opts.FontSize * 4 // room for "100.0%" on the right
	width := opts.LabelWidth + opts.BarWidth + percentWidth + opts.BarPadding*2
	height := titleHeight + len(bars)*(opts.BarHeight+opts.BarPadding) + opts.BarPadding

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`+"\n", width, height))
	sb.WriteString(fmt.Sprintf(`  <style>.label{font-family:%s;font-size:%dpx;fill:#666}.title{font-family:%s;font-size:%dpx;fill:#333;font-weight:bold}</style>`+"\n",
		opts.FontFamily, opts.FontSize, opts.FontFamily, opts.FontSize))

	if opts.Title != "" {
		sb.WriteString(fmt.Sprintf(`  <text x="%d" y="%d" class="title">%s</text>`+"\n",
			opts.BarPadding, opts.FontSize, opts.Title))
	}

	barX := opts.BarPadding + opts.LabelWidth
	for i, bar := range bars {
		progress := bar.Progress
		if progress < 0 {
			progress = 0
		}
		if progress > 100 {
			progress = 100
		}

		y := titleHeight + opts.BarPadding + i*(opts.BarHeight+opts.BarPadding)
		textY := y + (opts.BarHeight+opts.FontSize)/2 - 1

		// goal label on the left
		sb.WriteString(fmt.Sprintf(`  <text x="%d" y="%d" class="label">%s</text>`+"\n",
			opts.BarPadding, textY, bar.Label))

		// track and fill
		fillWidth := int(float64(opts.BarWidth) * progress / 100)
		sb.WriteString(fmt.Sprintf(`  <rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`+"\n",
			barX, y, opts.BarWidth, opts.BarHeight, opts.TrackColor))
		if fillWidth > 0 {
			sb.WriteString(fmt.Sprintf(`  <rect x="%d" y="%d" width="%d" height="%d" fill="%s" data-progress="%.1f">`+"\n",
				barX, y, fillWidth, opts.BarHeight, opts.FillColor, progress))
			sb.WriteString(fmt.Sprintf(`    <title>%s: %.1f%%</title>`+"\n", bar.Label, progress))
			sb.WriteString(`  </rect>` + "\n")
		}

		// percentage on the right
		sb.WriteString(fmt.Sprintf(`  <text x="%d" y="%d" class="label">%.1f%%</text>`+"\n",
			barX+opts.BarWidth+opts.BarPadding, textY, progress))
	}

	sb.WriteString(`</svg>`)
	return sb.String()
}
