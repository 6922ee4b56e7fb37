package consts

import "time"

// SkippedForever 永久跳过的哨兵时间戳。与 NULL（未处理）和真实发布时间都能区分，
// 同时在查询里和任何非空 posted_on 一样被排除掉
var SkippedForever = time.Unix(0, 0).UTC()

const MimeJPEG = "image/jpeg"

// RecentLimitDefault 去重复回看的默认条数
const RecentLimitDefault = 10

const (
	PublishStateDefault = "draft"
)
