package board

import (
	"Agora/pkg/api"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultProfileImage = "/images/default-profile.png"
	LoginPage           = "/login.html"
)

// FormatCount abbreviates counts of a thousand or more, e.g. 1234 -> "1.2K".
func FormatCount(n int) string {
	if n >= 1000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	}
	return strconv.Itoa(n)
}

// FormatDateTime renders t as yyyy-mm-dd hh:mm:ss in t's own location.
func FormatDateTime(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

type BlockKind int

const (
	BlockText BlockKind = iota + 1
	BlockImage
)

// Block is one rendered unit of a post body.
type Block struct {
	Kind BlockKind
	Text string
	URL  string
}

var imageLine = regexp.MustCompile(`(?i)\.(jpeg|jpg|gif|png)$`)

// ParseContent splits content into paragraphs. A line that starts with http
// and ends in an image extension becomes an inline image; blank lines are
// dropped. Attached images follow the body.
func ParseContent(content string, images []string) []Block {
	blocks := make([]Block, 0)
	for _, line := range strings.Split(content, "\n") {
		switch {
		case strings.HasPrefix(line, "http") && imageLine.MatchString(line):
			blocks = append(blocks, Block{Kind: BlockImage, URL: line})
		case strings.TrimSpace(line) != "":
			blocks = append(blocks, Block{Kind: BlockText, Text: line})
		}
	}
	for _, url := range images {
		blocks = append(blocks, Block{Kind: BlockImage, URL: url})
	}
	return blocks
}

// ProfileHeader is the avatar shown in the page header.
type ProfileHeader struct {
	ImageURL string
	Alt      string
	LoggedIn bool
}

// Header builds the header for user; nil means nobody is logged in.
func Header(user *api.User) ProfileHeader {
	if user == nil {
		return ProfileHeader{ImageURL: DefaultProfileImage, Alt: "login required"}
	}
	return ProfileHeader{
		ImageURL: ProfileImage(user.ProfileImageURL),
		Alt:      user.Nickname + " profile",
		LoggedIn: true,
	}
}

// ProfileImage falls back to the default avatar for an empty URL.
func ProfileImage(url string) string {
	if url == "" {
		return DefaultProfileImage
	}
	return url
}
