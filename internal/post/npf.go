package post

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/goccy/go-json"
)

// Part 多段上传里的一段；session 层负责把它交给 HTTP 客户端
type Part struct {
	Name        string
	FileName    string
	ContentType string
	Reader      io.Reader
}

type mediaRef struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

type inlineFormat struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Type  string `json:"type"`
}

type contentBlock struct {
	Type       string         `json:"type"`
	Media      []mediaRef     `json:"media,omitempty"`
	AltText    string         `json:"alt_text,omitempty"`
	Caption    string         `json:"caption,omitempty"`
	Text       string         `json:"text,omitempty"`
	Formatting []inlineFormat `json:"formatting,omitempty"`
}

type layoutRow struct {
	Blocks []int `json:"blocks"`
}

type layoutBlock struct {
	Type    string      `json:"type"`
	Display []layoutRow `json:"display"`
}

type npfPayload struct {
	State     string         `json:"state"`
	Tags      string         `json:"tags"`
	Content   []contentBlock `json:"content"`
	Layout    []layoutBlock  `json:"layout"`
	SourceURL string         `json:"source_url,omitempty"`
}

// Multipart 组装平台要的全部分段：每张图一个二进制段，外加一个 json 段。
// 任何一张图的落盘文件读不出来，这次提交整体作废
func (p *Post) Multipart(baseDir string) ([]Part, error) {
	var parts []Part
	var content []contentBlock

	for _, img := range p.images {
		if err := img.Hydrate(); err != nil {
			return nil, err
		}

		data, err := os.ReadFile(img.ConvertedPath(baseDir))
		if err != nil {
			return nil, fmt.Errorf("image file unreadable: %w", err)
		}

		identifier := fmt.Sprintf("image_%d", img.ID)
		parts = append(parts, Part{
			Name:        identifier,
			FileName:    identifier,
			ContentType: img.MimeType,
			Reader:      bytes.NewReader(data),
		})
		content = append(content, contentBlock{
			Type:    "image",
			Media:   []mediaRef{{Type: img.MimeType, Identifier: identifier}},
			AltText: img.AltText,
			Caption: img.OriginalFilename,
		})
	}

	// 来源说明和自由文案合为一个文本块
	commentary := fmt.Sprintf("From Disc #%d, '%s' directory",
		p.images[0].OriginCD, p.images[0].Subdirectories)
	if p.Caption != "" {
		commentary += "\n\n" + p.Caption
	}
	content = append(content, contentBlock{Type: "text", Text: commentary})

	content = append(content, contentBlock{
		Type: "text",
		Text: p.Attribution,
		Formatting: []inlineFormat{
			{Start: 0, End: utf8.RuneCountInString(p.Attribution), Type: "small"},
		},
	})

	// 版式：所有图一行，来源说明一行，署名一行
	imageRow := layoutRow{Blocks: make([]int, len(p.images))}
	for i := range p.images {
		imageRow.Blocks[i] = i
	}
	layout := []layoutBlock{{
		Type: "rows",
		Display: []layoutRow{
			imageRow,
			{Blocks: []int{len(p.images)}},
			{Blocks: []int{len(p.images) + 1}},
		},
	}}

	body, err := json.Marshal(npfPayload{
		State:     p.PublishState,
		Tags:      p.TagString(),
		Content:   content,
		Layout:    layout,
		SourceURL: p.SourceURL,
	})
	if err != nil {
		return nil, err
	}

	parts = append(parts, Part{
		Name:        "json",
		ContentType: "application/json",
		Reader:      bytes.NewReader(body),
	})
	return parts, nil
}
