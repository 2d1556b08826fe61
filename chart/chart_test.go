package chart

import (
	"strings"
	"testing"
)

func TestGenerateProgressChartSVG_EmptyBars(t *testing.T) {
	svg := GenerateProgressChartSVG([]Bar{}, nil)

	if svg != "" {
		t.Errorf("Expected empty string for empty bars, got: %s", svg)
	}
}

func TestGenerateProgressChartSVG_NilOptions(t *testing.T) {
	// デフォルトオプションで正常に動作することを確認
	bars := []Bar{
		{Label: "Read 12 books", Progress: 50},
	}

	svg := GenerateProgressChartSVG(bars, nil)

	if svg == "" {
		t.Error("Expected non-empty SVG with nil options")
	}

	if !strings.Contains(svg, "<svg") {
		t.Error("Expected SVG tag in output")
	}
}

func TestGenerateProgressChartSVG_WithBars(t *testing.T) {
	bars := []Bar{
		{Label: "Read 12 books", Progress: 66.7},
		{Label: "Run 300km", Progress: 0},
		{Label: "Ship the app", Progress: 100},
	}

	opts := &Options{
		Title: "Q1 2024",
	}

	svg := GenerateProgressChartSVG(bars, opts)

	// SVGの基本構造を確認
	if !strings.Contains(svg, "<svg") {
		t.Error("Expected SVG tag in output")
	}
	if !strings.Contains(svg, "</svg>") {
		t.Error("Expected closing SVG tag in output")
	}

	// サイクル名がタイトルに含まれることを確認
	if !strings.Contains(svg, "Q1 2024") {
		t.Error("Expected cycle name in SVG title")
	}

	// 各ゴールのラベルが含まれることを確認
	for _, bar := range bars {
		if !strings.Contains(svg, bar.Label) {
			t.Errorf("Expected label %q in SVG output", bar.Label)
		}
	}

	// 進捗率のテキストが含まれることを確認
	if !strings.Contains(svg, "66.7%") {
		t.Error("Expected 66.7% in SVG output")
	}
	if !strings.Contains(svg, "0.0%") {
		t.Error("Expected 0.0% in SVG output")
	}
	if !strings.Contains(svg, "100.0%") {
		t.Error("Expected 100.0% in SVG output")
	}

	// 進捗0のバーには塗りの矩形が描かれない
	if strings.Contains(svg, `data-progress="0.0"`) {
		t.Error("Expected no fill rect for zero progress")
	}
	if !strings.Contains(svg, `data-progress="100.0"`) {
		t.Error("Expected fill rect for full progress")
	}
}

func TestGenerateProgressChartSVG_ClampsProgress(t *testing.T) {
	bars := []Bar{
		{Label: "over", Progress: 150},
		{Label: "under", Progress: -20},
	}

	svg := GenerateProgressChartSVG(bars, nil)

	if !strings.Contains(svg, "100.0%") {
		t.Error("Expected progress clamped to 100.0%")
	}
	if !strings.Contains(svg, "0.0%") {
		t.Error("Expected progress clamped to 0.0%")
	}
}
