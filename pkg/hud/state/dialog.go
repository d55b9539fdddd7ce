package state

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Placement defaults preserved from the original overlay; the GM can
// override all of them per block through the metadata document.
const (
	defaultPortraitOffsetX   = 20
	defaultPortraitOffsetY   = -12
	defaultPortraitTopMargin = 8
)

// ParseDialogBlocks splits the plain-text dialog file into block strings.
// Blocks are separated by one or more blank lines or by a literal "---"
// line; the lines inside a block are joined with single spaces.
func ParseDialogBlocks(data []byte) []string {
	var blocks []string
	var current []string

	flush := func() {
		if len(current) > 0 {
			blocks = append(blocks, strings.Join(current, " "))
			current = current[:0]
		}
	}

	for _, line := range strings.Split(string(data), "\n") {
		s := strings.TrimSpace(line)
		if s == "" || s == "---" {
			flush()
			continue
		}
		current = append(current, s)
	}
	flush()
	return blocks
}

// dialogIndexDoc is the index side-channel written by the GM console next to
// the dialog text file.
type dialogIndexDoc struct {
	Index *int `json:"index"`
}

// ParseDialogIndex decodes the current-index side-channel. An absent index
// key reads as 0; the caller clamps against the loaded block count.
func ParseDialogIndex(data []byte) (int, error) {
	var doc dialogIndexDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return 0, fmt.Errorf("dialog index: %w", err)
	}
	if doc.Index == nil {
		return 0, nil
	}
	return *doc.Index, nil
}

// portraitMetaDoc accepts both the current offset field names and the
// original pad_* spellings.
type portraitMetaDoc struct {
	Portrait string `json:"portrait"`
	Speaker  string `json:"speaker"`

	OffsetX *int `json:"portrait_offset_x"`
	PadX    *int `json:"portrait_pad_x"` // legacy

	OffsetY *int `json:"portrait_offset_y"`
	PadY    *int `json:"portrait_pad_y"` // legacy

	Scale     *float64 `json:"portrait_scale"`
	Side      string   `json:"portrait_side"`
	Anchor    string   `json:"portrait_anchor"`
	TopMargin *int     `json:"portrait_top_margin"`
}

// ParseDialogMeta decodes the per-block portrait metadata document: a map
// from stringified block index to placement. Entries with unparsable keys
// are skipped rather than failing the document.
func ParseDialogMeta(data []byte) (DialogMeta, error) {
	var doc map[string]portraitMetaDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("dialog meta: %w", err)
	}

	meta := make(DialogMeta, len(doc))
	for key, entry := range doc {
		idx, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil || idx < 0 {
			continue
		}
		meta[idx] = entry.normalize()
	}
	return meta, nil
}

func (d portraitMetaDoc) normalize() PortraitMeta {
	m := PortraitMeta{
		Portrait:  d.Portrait,
		Speaker:   d.Speaker,
		OffsetX:   defaultPortraitOffsetX,
		OffsetY:   defaultPortraitOffsetY,
		Scale:     1.0,
		TopMargin: defaultPortraitTopMargin,
	}
	if d.OffsetX != nil {
		m.OffsetX = *d.OffsetX
	} else if d.PadX != nil {
		m.OffsetX = *d.PadX
	}
	if d.OffsetY != nil {
		m.OffsetY = *d.OffsetY
	} else if d.PadY != nil {
		m.OffsetY = *d.PadY
	}
	if d.Scale != nil && *d.Scale > 0 {
		m.Scale = *d.Scale
	}
	if d.TopMargin != nil && *d.TopMargin >= 0 {
		m.TopMargin = *d.TopMargin
	}
	if strings.EqualFold(strings.TrimSpace(d.Side), "right") {
		m.Side = PortraitRight
	}
	switch strings.ToLower(strings.TrimSpace(d.Anchor)) {
	case "top":
		m.Anchor = AnchorTop
	case "center":
		m.Anchor = AnchorCenter
	default:
		m.Anchor = AnchorBottom
	}
	return m
}

// BuildDialog combines the text blocks with their metadata into the dialog
// state. Speaker and portrait come from the metadata entry for each block's
// index; blocks without metadata render as the narrator with no portrait.
func BuildDialog(blocks []string, meta DialogMeta, currentIndex int) DialogState {
	d := DialogState{
		Blocks:       make([]DialogBlock, 0, len(blocks)),
		CurrentIndex: currentIndex,
	}
	for i, text := range blocks {
		block := DialogBlock{Text: text}
		if m, ok := meta[i]; ok {
			block.Speaker = m.Speaker
			block.PortraitPath = m.Portrait
		}
		d.Blocks = append(d.Blocks, block)
	}
	d.ClampCurrent()
	return d
}
