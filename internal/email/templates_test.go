package email

import (
	"strings"
	"testing"

	"mentionwatch/internal/config"
	"mentionwatch/internal/models"
)

func templatesForTest() *Templates {
	return NewTemplates(&config.Config{
		SiteTitle: "Mentionwatch Test",
		BaseURL:   "https://track.example.com",
	})
}

func TestNewMentionsTemplate(t *testing.T) {
	user := &models.User{DisplayName: "Alice", Email: "alice@example.com"}
	result := &models.SearchResponse{
		TweetsFound: 2,
		Tweets: []models.Tweet{
			{TweetText: "loving #golang lately", AuthorUsername: "bob", AuthorDisplayName: "Bob B"},
			{TweetText: "#golang at work", AuthorUsername: "carol", AuthorDisplayName: "Carol C"},
		},
		Keywords: []models.KeywordStatus{
			{Keyword: "#golang", Found: 2},
			{Keyword: "#rust", Found: 0},
		},
	}

	subject, htmlBody, textBody := templatesForTest().NewMentions(user, result)

	if !strings.Contains(subject, "2 new mention") {
		t.Errorf("subject = %q, want mention count", subject)
	}
	if !strings.Contains(subject, "Mentionwatch Test") {
		t.Errorf("subject = %q, want site title", subject)
	}

	for _, want := range []string{"Alice", "@bob", "loving #golang lately", "https://track.example.com"} {
		if !strings.Contains(htmlBody, want) {
			t.Errorf("htmlBody missing %q", want)
		}
	}
	// Only keywords that actually matched are listed.
	if !strings.Contains(htmlBody, "#golang") {
		t.Error("htmlBody missing matched keyword")
	}
	if strings.Contains(htmlBody, "#rust") {
		t.Error("htmlBody lists keyword with no matches")
	}

	for _, want := range []string{"Alice", "@carol", "#golang at work"} {
		if !strings.Contains(textBody, want) {
			t.Errorf("textBody missing %q", want)
		}
	}
}

func TestNewMentionsTemplateEscapesHTML(t *testing.T) {
	user := &models.User{DisplayName: "Alice"}
	result := &models.SearchResponse{
		TweetsFound: 1,
		Tweets: []models.Tweet{
			{TweetText: `<script>alert("x")</script>`, AuthorUsername: "bob", AuthorDisplayName: "Bob"},
		},
		Keywords: []models.KeywordStatus{{Keyword: "x", Found: 1}},
	}

	_, htmlBody, _ := templatesForTest().NewMentions(user, result)

	if strings.Contains(htmlBody, `<script>alert`) {
		t.Error("htmlBody contains unescaped tweet text")
	}
	if !strings.Contains(htmlBody, "&lt;script&gt;") {
		t.Error("htmlBody missing escaped tweet text")
	}
}

func TestNewMentionsTemplateCapsTweetList(t *testing.T) {
	user := &models.User{DisplayName: "Alice"}
	result := &models.SearchResponse{TweetsFound: maxTweetsInEmail + 3}
	for i := 0; i < maxTweetsInEmail+3; i++ {
		result.Tweets = append(result.Tweets, models.Tweet{
			TweetText: "mention", AuthorUsername: "bob", AuthorDisplayName: "Bob",
		})
	}
	result.Keywords = []models.KeywordStatus{{Keyword: "x", Found: maxTweetsInEmail + 3}}

	_, htmlBody, textBody := templatesForTest().NewMentions(user, result)

	if !strings.Contains(htmlBody, "and 3 more") {
		t.Error("htmlBody missing overflow marker")
	}
	if !strings.Contains(textBody, "and 3 more") {
		t.Error("textBody missing overflow marker")
	}
}
