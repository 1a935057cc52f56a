package feed

import (
	"testing"
)

func TestParseRSS2(t *testing.T) {
	rssData := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Test Podcast</title>
    <link>https://example.com</link>
    <description>Test Description</description>
    <language>en-us</language>
    <image>
      <url>https://example.com/icon.png</url>
      <title>Test Podcast</title>
      <link>https://example.com</link>
    </image>
    <item>
      <title>Episode 1</title>
      <link>https://example.com/episodes/episode-1</link>
      <description><![CDATA[<p>First <b>episode</b></p>]]></description>
      <guid>episode-1</guid>
      <pubDate>Mon, 03 Jul 2023 10:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Episode 2</title>
      <link>https://example.com/episodes/episode-2</link>
      <description>Second episode</description>
      <pubDate>Mon, 03 Jul 2023 11:00:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

	parser := NewParser()
	metadata, episodes, err := parser.Run([]byte(rssData))

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if metadata.Title != "Test Podcast" {
		t.Errorf("Expected title 'Test Podcast', got: %s", metadata.Title)
	}
	if metadata.Language != "en-us" {
		t.Errorf("Expected language 'en-us', got: %s", metadata.Language)
	}
	if metadata.ImageURL != "https://example.com/icon.png" {
		t.Errorf("Expected image URL 'https://example.com/icon.png', got: %s", metadata.ImageURL)
	}

	if len(episodes) != 2 {
		t.Fatalf("Expected 2 episodes, got: %d", len(episodes))
	}

	episode := episodes[0]
	if episode.Title != "Episode 1" {
		t.Errorf("Expected title 'Episode 1', got: %s", episode.Title)
	}
	if episode.Link != "https://example.com/episodes/episode-1" {
		t.Errorf("Expected link 'https://example.com/episodes/episode-1', got: %s", episode.Link)
	}
	if episode.Description != "<p>First <b>episode</b></p>" {
		t.Errorf("Expected markup to be kept in description, got: %s", episode.Description)
	}
}

func TestParseKeepsPublishedVerbatim(t *testing.T) {
	rssData := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Test Podcast</title>
    <item>
      <title>A</title>
      <link>https://x/a</link>
      <pubDate>2024-01-01</pubDate>
    </item>
  </channel>
</rss>`

	_, episodes, err := NewParser().Run([]byte(rssData))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(episodes) != 1 {
		t.Fatalf("Expected 1 episode, got: %d", len(episodes))
	}
	if episodes[0].Published != "2024-01-01" {
		t.Errorf("Expected published '2024-01-01', got: %s", episodes[0].Published)
	}
}

func TestParseInvalidFeed(t *testing.T) {
	parser := NewParser()
	_, _, err := parser.Run([]byte("invalid xml"))

	if err == nil {
		t.Error("Expected error for invalid XML")
	}
}

func TestParseEmptyChannel(t *testing.T) {
	rssData := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Empty Podcast</title>
  </channel>
</rss>`

	_, episodes, err := NewParser().Run([]byte(rssData))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(episodes) != 0 {
		t.Errorf("Expected 0 episodes, got: %d", len(episodes))
	}
}

func TestParseRSSWithEnclosure(t *testing.T) {
	parser := NewParser()

	rssData := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
	<title>Test Podcast</title>
	<link>https://example.com</link>
	<description>A test podcast feed</description>
	<item>
		<title>Episode 1</title>
		<link>https://example.com/episode1</link>
		<description>First episode</description>
		<guid>episode1</guid>
		<pubDate>Wed, 01 Feb 2023 10:00:00 +0000</pubDate>
		<enclosure url="https://example.com/audio/episode1.mp3" length="24576000" type="audio/mpeg" />
	</item>
</channel>
</rss>`

	_, episodes, err := parser.Run([]byte(rssData))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(episodes) != 1 {
		t.Fatalf("Expected 1 episode, got: %d", len(episodes))
	}

	episode := episodes[0]

	if episode.Published != "Wed, 01 Feb 2023 10:00:00 +0000" {
		t.Errorf("Expected raw pubDate, got: %s", episode.Published)
	}
	if episode.EnclosureURL != "https://example.com/audio/episode1.mp3" {
		t.Errorf("Expected enclosure URL 'https://example.com/audio/episode1.mp3', got: %s", episode.EnclosureURL)
	}
	if episode.EnclosureLength != 24576000 {
		t.Errorf("Expected enclosure length 24576000, got: %d", episode.EnclosureLength)
	}
	if episode.EnclosureType != "audio/mpeg" {
		t.Errorf("Expected enclosure type 'audio/mpeg', got: %s", episode.EnclosureType)
	}
}

func TestParseRSSWithoutEnclosure(t *testing.T) {
	parser := NewParser()

	rssData := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
	<title>Test Blog</title>
	<item>
		<title>Blog Post 1</title>
		<link>https://example.com/post1</link>
	</item>
</channel>
</rss>`

	_, episodes, err := parser.Run([]byte(rssData))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(episodes) != 1 {
		t.Fatalf("Expected 1 episode, got: %d", len(episodes))
	}

	if episodes[0].EnclosureURL != "" {
		t.Errorf("Expected empty enclosure URL, got: %s", episodes[0].EnclosureURL)
	}
	if episodes[0].EnclosureLength != 0 {
		t.Errorf("Expected enclosure length 0, got: %d", episodes[0].EnclosureLength)
	}
}

func TestParseRSSWithMultipleEnclosures(t *testing.T) {
	parser := NewParser()

	rssData := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
	<title>Test Feed</title>
	<item>
		<title>Multi-enclosure Item</title>
		<link>https://example.com/item1</link>
		<enclosure url="https://example.com/file1.mp3" length="1000000" type="audio/mpeg" />
		<enclosure url="https://example.com/file2.pdf" length="2000000" type="application/pdf" />
	</item>
</channel>
</rss>`

	_, episodes, err := parser.Run([]byte(rssData))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(episodes) != 1 {
		t.Fatalf("Expected 1 episode, got: %d", len(episodes))
	}

	if episodes[0].EnclosureURL != "https://example.com/file1.mp3" {
		t.Errorf("Expected first enclosure URL, got: %s", episodes[0].EnclosureURL)
	}
	if episodes[0].EnclosureType != "audio/mpeg" {
		t.Errorf("Expected first enclosure type 'audio/mpeg', got: %s", episodes[0].EnclosureType)
	}
}
