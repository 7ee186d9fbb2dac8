package service

import (
	"errors"
	"strings"
)

// 链接策略：按空白切分正文提取 http(s)://… 片段，
// 限制数量并校验协议。三类失败各自保留独立的用户提示。
var (
	ErrBodyInvalid  = errors.New("评论内容无效")
	ErrTooManyLinks = errors.New("最多只能包含2个链接")
	ErrLinkScheme   = errors.New("链接仅支持 http/https")
)

// 每条评论允许的最大链接数
const maxLinksPerBody = 2

// LinkCheck 链接检查结果
type LinkCheck struct {
	HasLinks bool
	Count    int
}

// ValidateLinks 检查正文中的链接。提取规则只认 http:// 与 https://
// 前缀，因此协议校验结构上恒真，保留它是作为提取规则改动时的保险。
func ValidateLinks(body string) (LinkCheck, error) {
	var links []string
	for _, token := range strings.Fields(body) {
		if strings.HasPrefix(token, "http://") || strings.HasPrefix(token, "https://") {
			links = append(links, token)
		}
	}

	for _, link := range links {
		scheme := link[:strings.Index(link, "://")]
		if scheme != "http" && scheme != "https" {
			return LinkCheck{}, ErrLinkScheme
		}
	}

	if len(links) > maxLinksPerBody {
		return LinkCheck{}, ErrTooManyLinks
	}

	return LinkCheck{HasLinks: len(links) > 0, Count: len(links)}, nil
}
