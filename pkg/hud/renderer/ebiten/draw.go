package ebiten

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/leonelquinteros/gotext"

	"encounterhud/pkg/engine/layout"
	"encounterhud/pkg/engine/textwrap"
	"encounterhud/pkg/hud/frame"
	"encounterhud/pkg/hud/theme"
)

const lineGap = 4

func fillRect(dst *ebiten.Image, r layout.Rect, clr color.Color) {
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), clr, false)
}

func strokeRect(dst *ebiten.Image, r layout.Rect, width float32, clr color.Color) {
	vector.StrokeRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), width, clr, false)
}

func drawText(dst *ebiten.Image, s string, face *text.GoTextFace, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, face, op)
}

func (o *Overlay) drawCombat(dst *ebiten.Image, f frame.CombatFrame, th *theme.Theme) {
	if len(f.Cards) == 0 && f.Header == "" {
		return
	}

	baseFace := o.session.Assets.Face(th.Fonts.Family, float64(th.Fonts.BaseSize))
	smallFace := o.session.Assets.Face(th.Fonts.Family, float64(th.Fonts.SmallSize))
	colText := th.Color(theme.ColorText)
	colIdle := th.Color(theme.ColorBorderIdle)
	colActive := th.Color(theme.ColorBorderActive)

	if f.Header != "" {
		drawText(dst, f.Header, baseFace, 20, 10, colText)
	}

	for _, card := range f.Cards {
		fillRect(dst, card.Rect, th.Color(theme.ColorCardBG))
		border := colIdle
		if card.Active {
			border = colActive
		}
		strokeRect(dst, card.Rect, 3, border)

		fillRect(dst, card.PortraitFrame, color.RGBA{A: 120})
		strokeRect(dst, card.PortraitFrame, 1, colIdle)
		o.drawCardPortrait(dst, card)

		drawText(dst, card.Name, baseFace, float64(card.NameX), float64(card.NameY), colText)

		if card.Bar != nil {
			bar := card.Bar
			fillRect(dst, bar.Rect, th.Color(theme.ColorHPBack))
			filled := bar.Rect
			filled.W = int(float64(bar.Rect.W) * bar.Fill)
			fillRect(dst, filled, th.Color(theme.ColorHPGood))
			drawText(dst, bar.Label, baseFace, float64(bar.LabelX), float64(bar.LabelY), colText)
		}

		if card.Condition != "" {
			drawText(dst, gotext.Get("Status: %s", card.Condition), baseFace,
				float64(card.ConditionX), float64(card.ConditionY), colText)
		}

		for _, badge := range card.Badges {
			o.drawBadge(dst, badge, smallFace, colIdle)
		}
	}
}

// drawCardPortrait fits the combatant's portrait into its slot, preserving
// aspect ratio.
func (o *Overlay) drawCardPortrait(dst *ebiten.Image, card frame.Card) {
	if card.PortraitPath == "" {
		return
	}
	tex := o.imageTexture(card.PortraitPath)
	if tex == nil {
		return
	}

	iw, ih := tex.Bounds().Dx(), tex.Bounds().Dy()
	if iw == 0 || ih == 0 {
		return
	}
	scale := math.Min(
		float64(card.PortraitRect.W)/float64(iw),
		float64(card.PortraitRect.H)/float64(ih),
	)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(card.PortraitRect.X), float64(card.PortraitRect.Y))
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(tex, op)
}

// drawBadge renders a status icon, or a lettered disc when no icon file
// exists for the status key.
func (o *Overlay) drawBadge(dst *ebiten.Image, badge frame.Badge, small *text.GoTextFace, disc color.Color) {
	if tex := o.iconTexture(badge.Key); tex != nil {
		iw, ih := tex.Bounds().Dx(), tex.Bounds().Dy()
		if iw == 0 || ih == 0 {
			return
		}
		scale := math.Min(float64(frame.BadgeSize)/float64(iw), float64(frame.BadgeSize)/float64(ih))
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(float64(badge.X), float64(badge.Y))
		op.Filter = ebiten.FilterLinear
		dst.DrawImage(tex, op)
		return
	}

	if badge.Letter == "" {
		return
	}

	r := float32(frame.BadgeSize) / 2
	cx := float32(badge.X) + r
	cy := float32(badge.Y) + r
	vector.DrawFilledCircle(dst, cx, cy, r, disc, false)

	w, h := text.Measure(badge.Letter, small, 0)
	drawText(dst, badge.Letter, small, float64(cx)-w/2, float64(cy)-h/2, color.Black)
}

func (o *Overlay) drawDialog(dst *ebiten.Image, f *frame.DialogFrame, th *theme.Theme) {
	baseFace := o.session.Assets.Face(th.Fonts.Family, float64(th.Fonts.BaseSize))
	dialogFace := o.session.Assets.Face(th.Fonts.Family, float64(th.Fonts.DialogSize))
	colText := th.Color(theme.ColorText)

	// The portrait goes down first so the panel overlaps its bottom edge.
	if p := f.Portrait; p != nil {
		if tex := o.portraitTexture(p.Path, p.Scale); tex != nil {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(p.X), float64(p.Y))
			dst.DrawImage(tex, op)
		}
	}

	fillRect(dst, f.Panel, th.Color(theme.ColorDialogBG))
	strokeRect(dst, f.Panel, 1, th.Color(theme.ColorDialogBorder))

	x := float64(f.Panel.X + frame.DialogInset)
	y := float64(f.Panel.Y + frame.DialogInset)

	if f.Speaker != "" {
		drawText(dst, f.Speaker, baseFace, x, y, th.Color(theme.ColorBorderActive))
		_, h := text.Measure(f.Speaker, baseFace, 0)
		y += h + lineGap
	}

	_, lineH := text.Measure("Ag", dialogFace, 0)
	for i, line := range f.Lines {
		drawText(dst, line, dialogFace, x, y+float64(i)*(lineH+lineGap), colText)
	}
}

// measureWith builds a wrap measurer over the theme's dialog face.
func (o *Overlay) measureWith(th *theme.Theme) textwrap.Measure {
	face := o.session.Assets.Face(th.Fonts.Family, float64(th.Fonts.DialogSize))
	return func(s string) float64 {
		w, _ := text.Measure(s, face, 0)
		return w
	}
}

// imageTexture returns the GPU texture for an image path, or nil when it
// cannot be read.
func (o *Overlay) imageTexture(path string) *ebiten.Image {
	key := "img:" + path
	if tex, ok := o.textures[key]; ok {
		return tex
	}
	img, err := o.session.Assets.Image(path)
	if err != nil {
		o.textures[key] = nil
		return nil
	}
	tex := ebiten.NewImageFromImage(img)
	o.textures[key] = tex
	return tex
}

// iconTexture returns the GPU texture for a status icon key, or nil when no
// icon file exists for it.
func (o *Overlay) iconTexture(key string) *ebiten.Image {
	cacheKey := "icon:" + key
	if tex, ok := o.textures[cacheKey]; ok {
		return tex
	}
	img, ok := o.session.Assets.StatusIcon(key)
	if !ok {
		o.textures[cacheKey] = nil
		return nil
	}
	tex := ebiten.NewImageFromImage(img)
	o.textures[cacheKey] = tex
	return tex
}

// portraitTexture returns the GPU texture for a prescaled dialog portrait.
func (o *Overlay) portraitTexture(path string, scale float64) *ebiten.Image {
	key := fmt.Sprintf("portrait:%s:%.3f", path, scale)
	if tex, ok := o.textures[key]; ok {
		return tex
	}
	img, err := o.session.Assets.Portrait(path, scale)
	if err != nil {
		o.textures[key] = nil
		return nil
	}
	tex := ebiten.NewImageFromImage(img)
	o.textures[key] = tex
	return tex
}
