package utils

import "github.com/common-nighthawk/go-figure"

func DrawBanner() {
	banner := figure.NewColorFigure("GCP Bill Doctor", "", "blue", true)
	banner.Print()
}
