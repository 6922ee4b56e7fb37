package model

import (
	"Clipvault/internal/pkg/consts"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// ClipartImage 归档图片记录，对应 clipart 表
type ClipartImage struct {
	ID                    uint64     `gorm:"primaryKey" json:"id"`
	Filename              string     `gorm:"type:varchar(255);not null" json:"filename"`
	OriginCD              int        `gorm:"column:origin_cd;not null" json:"origin_cd"`
	Subdirectories        string     `gorm:"type:varchar(100)" json:"subdirectories"`
	OriginalFileExtension string     `gorm:"type:varchar(5)" json:"original_file_extension"`
	FailedToSave          bool       `gorm:"type:tinyint(1);not null;default:0" json:"failed_to_save"`
	PostedOn              *time.Time `json:"posted_on"`

	// 仅发帖流程用到的运行时字段，不落库
	AltText          string `gorm:"-" json:"-"`
	MimeType         string `gorm:"-" json:"-"`
	OriginalFilename string `gorm:"-" json:"-"`
}

func (ClipartImage) TableName() string {
	return "clipart"
}

// NewClipartImage 构造进入发帖流程的记录，扩展名不支持时直接报错
func NewClipartImage(filename string, originCD int, subdirectories, originalExt string) (*ClipartImage, error) {
	img := &ClipartImage{
		Filename:              filename,
		OriginCD:              originCD,
		Subdirectories:        subdirectories,
		OriginalFileExtension: originalExt,
	}
	if err := img.Hydrate(); err != nil {
		return nil, err
	}
	return img, nil
}

// Hydrate 填充运行时字段。MIME 推导刻意把 png 也按 image/jpeg 处理，
// 平台对两种格式都按 jpeg 编码接收
func (img *ClipartImage) Hydrate() error {
	switch strings.ToLower(filepath.Ext(img.Filename)) {
	case ".jpg", ".jpeg", ".png":
		img.MimeType = consts.MimeJPEG
	default:
		return fmt.Errorf("unknown file extension for file %s", img.Filename)
	}

	stem := strings.TrimSuffix(img.Filename, filepath.Ext(img.Filename))
	img.OriginalFilename = fmt.Sprintf("%s.%s", stem, strings.ToLower(img.OriginalFileExtension))
	return nil
}

// ConvertedPath 转存后文件的完整路径
func (img *ClipartImage) ConvertedPath(baseDir string) string {
	return filepath.Join(baseDir, img.Subdirectories, img.Filename)
}

type PostStateKind int

const (
	Unposted PostStateKind = iota
	PostedAt
	SkippedPermanently
)

// PostState posted_on 列的显式视图：NULL=待发，哨兵零点=永久跳过，其余=已发布
type PostState struct {
	Kind PostStateKind
	At   time.Time
}

func (img *ClipartImage) PostState() PostState {
	if img.PostedOn == nil {
		return PostState{Kind: Unposted}
	}
	if img.PostedOn.UTC().Equal(consts.SkippedForever) {
		return PostState{Kind: SkippedPermanently}
	}
	return PostState{Kind: PostedAt, At: *img.PostedOn}
}
