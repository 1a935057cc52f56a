package feed

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/mmcdole/gofeed"
)

type Parser struct {
	gofeedParser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
	}
}

func (p *Parser) Run(data []byte) (*Metadata, []Episode, error) {
	feed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	metadata := &Metadata{
		Title:       feed.Title,
		Link:        feed.Link,
		Description: feed.Description,
		Language:    feed.Language,
	}

	if feed.Image != nil {
		metadata.ImageURL = feed.Image.URL
	}

	if feed.PublishedParsed != nil {
		metadata.FeedPublishedAt = feed.PublishedParsed
	}

	episodes := make([]Episode, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		episodes = append(episodes, p.normalizeItem(item))
	}

	return metadata, episodes, nil
}

func (p *Parser) normalizeItem(item *gofeed.Item) Episode {
	episode := Episode{
		Link:        item.Link,
		Title:       item.Title,
		Published:   item.Published,
		Description: item.Description,
	}

	// Only the first enclosure is used (RSS 2.0 allows one per item)
	if len(item.Enclosures) > 0 && item.Enclosures[0] != nil {
		enclosure := item.Enclosures[0]
		episode.EnclosureURL = enclosure.URL
		episode.EnclosureType = enclosure.Type

		if enclosure.Length != "" {
			if length, err := strconv.ParseInt(enclosure.Length, 10, 64); err == nil {
				episode.EnclosureLength = length
			}
		}
	}

	return episode
}
