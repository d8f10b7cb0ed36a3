package main

import (
	"image/color"

	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
)

// NewShowcaseUI builds the button panel: one row per pet holding its name
// and a button for every special animation. Buttons use colored nine-slices
// and the built-in basic font, so no theme assets are needed.
func NewShowcaseUI(s *surface) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 160})
	btnImg := &widget.ButtonImage{
		Idle:    imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255}),
		Hover:   imageui.NewNineSliceColor(color.NRGBA{R: 0x44, G: 0x44, B: 0x55, A: 255}),
		Pressed: imageui.NewNineSliceColor(color.NRGBA{R: 0x66, G: 0x55, B: 0x22, A: 255}),
	}

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: int(trackMargin), Right: int(trackMargin)}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionStart, VerticalPosition: widget.AnchorLayoutPositionStart}),
		),
	)

	for _, row := range s.rows {
		line := widget.NewContainer(
			widget.ContainerOpts.Layout(widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(6),
			)),
			widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.MinSize(0, int(buttonRowHeight))),
		)
		line.AddChild(widget.NewText(
			widget.TextOpts.Text(row.cfg.ID, &face, white),
			widget.TextOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(110, 28),
				widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter}),
			),
		))

		group := row.buttons
		byName := make(map[string]*widget.Button, len(group.names))
		for _, name := range group.names {
			btn := widget.NewButton(
				widget.ButtonOpts.Image(btnImg),
				widget.ButtonOpts.Text(group.label(name), &face, btnTextColor),
				widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(72, 28)),
				widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
					group.click(name)
				}),
			)
			byName[name] = btn
			line.AddChild(btn)
		}
		group.relabel = func() {
			for name, btn := range byName {
				if text := btn.Text(); text != nil {
					text.Label = group.label(name)
				}
			}
		}
		panel.AddChild(line)
	}

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}
