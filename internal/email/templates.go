package email

import (
	"fmt"
	"html"
	"strings"

	"mentionwatch/internal/config"
	"mentionwatch/internal/models"
)

// Templates provides email template generation.
type Templates struct {
	cfg *config.Config
}

// NewTemplates creates a new templates instance.
func NewTemplates(cfg *config.Config) *Templates {
	return &Templates{cfg: cfg}
}

// baseHTML wraps content in a consistent HTML email template.
func (t *Templates) baseHTML(title, content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #2563eb; color: white; padding: 20px; text-align: center; border-radius: 8px 8px 0 0; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { background: #f9fafb; padding: 20px; border: 1px solid #e5e7eb; }
        .footer { background: #f3f4f6; padding: 15px; text-align: center; font-size: 12px; color: #6b7280; border-radius: 0 0 8px 8px; border: 1px solid #e5e7eb; border-top: none; }
        .button { display: inline-block; background: #2563eb; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; margin: 10px 0; }
        .tweet-box { background: white; border: 1px solid #e5e7eb; border-radius: 6px; padding: 15px; margin: 15px 0; }
        .author { font-weight: 600; color: #374151; }
        .keyword { background: #e5e7eb; padding: 2px 6px; border-radius: 4px; font-family: monospace; }
    </style>
</head>
<body>
    <div class="header">
        <h1>%s</h1>
    </div>
    <div class="content">
        %s
    </div>
    <div class="footer">
        <p>This email was sent by %s</p>
        <p><a href="%s">%s</a></p>
    </div>
</body>
</html>`, html.EscapeString(title), html.EscapeString(t.cfg.SiteTitle), content, html.EscapeString(t.cfg.SiteTitle), t.cfg.BaseURL, t.cfg.BaseURL)
}

// maxTweetsInEmail caps how many tweets the digest body lists.
const maxTweetsInEmail = 5

// NewMentions generates the digest sent when a tracking pass finds new tweets.
func (t *Templates) NewMentions(user *models.User, result *models.SearchResponse) (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("[%s] %d new mention(s) of your keywords", t.cfg.SiteTitle, result.TweetsFound)

	var matched []string
	for _, ks := range result.Keywords {
		if ks.Found > 0 {
			matched = append(matched, ks.Keyword)
		}
	}

	var htmlTweets strings.Builder
	for i, tweet := range result.Tweets {
		if i >= maxTweetsInEmail {
			htmlTweets.WriteString(fmt.Sprintf("<p>... and %d more.</p>", len(result.Tweets)-maxTweetsInEmail))
			break
		}
		htmlTweets.WriteString(fmt.Sprintf(`
        <div class="tweet-box">
            <p><span class="author">@%s</span> (%s)</p>
            <p>%s</p>
        </div>`,
			html.EscapeString(tweet.AuthorUsername),
			html.EscapeString(tweet.AuthorDisplayName),
			html.EscapeString(tweet.TweetText),
		))
	}

	var htmlKeywords strings.Builder
	for _, k := range matched {
		htmlKeywords.WriteString(fmt.Sprintf(`<span class="keyword">%s</span> `, html.EscapeString(k)))
	}

	content := fmt.Sprintf(`
        <p>Hi %s,</p>
        <p>Your tracked keywords were mentioned <strong>%d</strong> time(s): %s</p>
        %s
        <p style="text-align: center;">
            <a href="%s" class="button">Open Dashboard</a>
        </p>
    `,
		html.EscapeString(user.DisplayName),
		result.TweetsFound,
		htmlKeywords.String(),
		htmlTweets.String(),
		t.cfg.BaseURL,
	)

	htmlBody = t.baseHTML(subject, content)

	var textTweets strings.Builder
	for i, tweet := range result.Tweets {
		if i >= maxTweetsInEmail {
			fmt.Fprintf(&textTweets, "... and %d more.\n", len(result.Tweets)-maxTweetsInEmail)
			break
		}
		fmt.Fprintf(&textTweets, "@%s (%s):\n%s\n\n", tweet.AuthorUsername, tweet.AuthorDisplayName, tweet.TweetText)
	}

	textBody = fmt.Sprintf(`Hi %s,

Your tracked keywords were mentioned %d time(s): %s

%s
Open your dashboard: %s

--
%s
%s`,
		user.DisplayName,
		result.TweetsFound,
		strings.Join(matched, ", "),
		textTweets.String(),
		t.cfg.BaseURL,
		t.cfg.SiteTitle,
		t.cfg.BaseURL,
	)

	return subject, htmlBody, textBody
}
