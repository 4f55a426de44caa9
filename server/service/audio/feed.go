package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Feed formats.
const (
	FeedRSS  = "rss"
	FeedAtom = "atom"
)

// ErrUnsupportedFeedFormat is returned for a feed format other than rss or atom.
var ErrUnsupportedFeedFormat = errors.New("unsupported feed format")

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Feed renders the recordings of a user as an RSS or Atom document. Item
// links point to baseURL; notes are rendered from markdown into the item
// content. An empty format selects RSS.
func (s *Service) Feed(ctx context.Context, userID, baseURL, format string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FeedRSS
	}
	if format != FeedRSS && format != FeedAtom {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFeedFormat, format)
	}

	recordings, err := s.ListRecordings(ctx, userID)
	if err != nil {
		return "", err
	}

	baseURL = strings.TrimSuffix(baseURL, "/")
	feed := &feeds.Feed{
		Title:       "Gravações de " + userID,
		Link:        &feeds.Link{Href: fmt.Sprintf("%s/users/%s/recordings", baseURL, userID)},
		Description: "Resumos em áudio gravados para estudo",
		Author:      &feeds.Author{Name: userID},
		Created:     s.now(),
	}
	if len(recordings) > 0 {
		feed.Created = recordings[0].CreatedAt
		feed.Updated = latestUpdate(recordings)
	}

	for _, r := range recordings {
		content, err := renderNotes(r.Notes)
		if err != nil {
			return "", fmt.Errorf("failed to render notes of recording %s: %w", r.ID, err)
		}
		link := r.AudioURL
		if link == "" {
			link = fmt.Sprintf("%s/recordings/%s", baseURL, r.ID)
		}
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          r.ID,
			Title:       r.Title,
			Link:        &feeds.Link{Href: link},
			Description: itemDescription(r),
			Content:     content,
			Created:     r.CreatedAt,
			Updated:     r.UpdatedAt,
		})
	}

	if format == FeedAtom {
		return feed.ToAtom()
	}
	return feed.ToRss()
}

func latestUpdate(recordings []*Recording) time.Time {
	var latest time.Time
	for _, r := range recordings {
		if r.UpdatedAt.After(latest) {
			latest = r.UpdatedAt
		}
	}
	return latest
}

func itemDescription(r *Recording) string {
	parts := make([]string, 0, 3)
	if r.Subject != "" {
		parts = append(parts, r.Subject)
	}
	if r.Topic != "" {
		parts = append(parts, r.Topic)
	}
	parts = append(parts, FormatDuration(r.Duration))
	return strings.Join(parts, " · ")
}

func renderNotes(notes string) (string, error) {
	if strings.TrimSpace(notes) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(notes), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
