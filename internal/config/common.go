package config

// Config 配置主体
type Config struct {
	DB       DBConfig       `mapstructure:"database" validate:"required"`
	Images   ImagesConfig   `mapstructure:"images" validate:"required"`
	Tumblr   TumblrConfig   `mapstructure:"tumblr" validate:"required"`
	Selector SelectorConfig `mapstructure:"selector"`
	Convert  ConvertConfig  `mapstructure:"convert"`
}

// DBConfig 数据库配置，账号密码走系统凭据库而不是配置文件
type DBConfig struct {
	Host        string `mapstructure:"host" validate:"required"`
	Database    string `mapstructure:"database" validate:"required"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

// ImagesConfig 图片归档目录配置
type ImagesConfig struct {
	BaseDir string `mapstructure:"base_dir" validate:"required"`
}

// TumblrConfig Tumblr 平台配置
type TumblrConfig struct {
	AuthURL     string `mapstructure:"auth_url" validate:"required,url"`
	TokenURL    string `mapstructure:"token_url" validate:"required,url"`
	RedirectURL string `mapstructure:"redirect_url" validate:"required,url"`
	// PostURL 带 {blogname} 占位符的建帖端点
	PostURL      string   `mapstructure:"post_url" validate:"required"`
	Blogname     string   `mapstructure:"blogname" validate:"required"`
	StandardTags []string `mapstructure:"standard_tags"`
	Attribution  string   `mapstructure:"attribution"`
	PublishState string   `mapstructure:"publish_state"`
	SourceURL    string   `mapstructure:"source_url"`
}

// SelectorConfig 选图配置
type SelectorConfig struct {
	// RecentLimit 去重复时回看的最近已发布记录条数
	RecentLimit int `mapstructure:"recent_limit"`
}

// ConvertConfig 光盘转存配置
type ConvertConfig struct {
	Sources []ConvertSource `mapstructure:"sources" validate:"dive"`
}

// ConvertSource 一张光盘对应的挂载点
type ConvertSource struct {
	OriginCD int    `mapstructure:"origin_cd" validate:"required"`
	Mount    string `mapstructure:"mount" validate:"required"`
}
