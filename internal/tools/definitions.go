package tools

import (
	"context"

	"github.com/wooshiiltd/semrush-mcp/internal/semrush"
)

// Argument shapes. Validation happens at the transport boundary; by the
// time these decode, strings are strings and optional numbers are either
// absent or numeric.

type domainArgs struct {
	Domain   string `mapstructure:"domain"`
	Database string `mapstructure:"database"`
	Limit    *int   `mapstructure:"limit"`
}

type phraseArgs struct {
	Phrase   string `mapstructure:"phrase"`
	Database string `mapstructure:"database"`
	Limit    *int   `mapstructure:"limit"`
}

type phrasesArgs struct {
	Phrases  []string `mapstructure:"phrases"`
	Database string   `mapstructure:"database"`
}

type targetArgs struct {
	Target string `mapstructure:"target"`
	Limit  *int   `mapstructure:"limit"`
}

type trafficSummaryArgs struct {
	Domains []string `mapstructure:"domains"`
	Country string   `mapstructure:"country"`
}

type trafficSourcesArgs struct {
	Domain  string `mapstructure:"domain"`
	Country string `mapstructure:"country"`
}

// definitions enumerates the closed tool table. One tool per upstream
// operation; names are stable identifiers for the transport layer.
func definitions(client *semrush.Client) []Tool {
	return []Tool{
		{
			Name:        "semrush_domain_overview",
			Description: "Domain ranking data across all regional databases",
			Handler: func(ctx context.Context, args Arguments) (*semrush.ResponseEnvelope, error) {
				a, err := decodeArgs[domainArgs]("semrush_domain_overview", args)
				if err != nil {
					return nil, err
				}
				return client.DomainOverview(ctx, a.Domain)
			},
		},
		{
			Name:        "semrush_domain_overview_db",
			Description: "Domain ranking data for a single regional database",
			Handler: func(ctx context.Context, args Arguments) (*semrush.ResponseEnvelope, error) {
				a, err := decodeArgs[domainArgs]("semrush_domain_overview_db", args)
				if err != nil {
					return nil, err
				}
				return client.DomainOverviewSingleDB(ctx, a.Domain, a.Database)
			},
		},
		{
			Name:        "semrush_domain_organic_keywords",
			Description: "Keywords a domain ranks for in organic search",
			Handler: func(ctx context.Context, args Arguments) (*semrush.ResponseEnvelope, error) {
				a, err := decodeArgs[domainArgs]("semrush_domain_organic_keywords", args)
				if err != nil {
					return nil, err
				}
				return client.DomainOrganicKeywords(ctx, a.Domain, a.Database, a.Limit)
			},
		},
		{
			Name:        "semrush_domain_paid_keywords",
			Description: "Keywords a domain bids on in paid search",
			Handler: func(ctx context.Context, args Arguments) (*semrush.ResponseEnvelope, error) {
				a, err := decodeArgs[domainArgs]("semrush_domain_paid_keywords", args)
				if err != nil {
					return nil, err
				}
				return client.DomainPaidKeywords(ctx, a.Domain, a.Database, a.Limit)
			},
		},
		{
			Name:        "semrush_domain_organic_competitors",
			Description: "Domains competing with a domain in organic search",
			Handler: func(ctx context.Context, args Arguments) (*semrush.ResponseEnvelope, error) {
				a, err := decodeArgs[domainArgs]("semrush_domain_organic_competitors", args)
				if err != nil {
					return nil, err
				}
				return client.DomainOrganicCompetitors(ctx, a.Domain, a.Database, a.Limit)
			},
		},
		{
			Name:        "semrush_domain_paid_competitors",
			Description: "Domains competing with a domain in paid search",
			Handler: func(ctx context.Context, args Arguments) (*semrush.ResponseEnvelope, error) {
				a, err := decodeArgs[domainArgs]("semrush_domain_paid_competitors", args)
				if err != nil {
					return nil, err
				}
				return client.DomainPaidCompetitors(ctx, a.Domain, a.Database, a.Limit)
			},
		},
		{
			Name:        "semrush_keyword_overview",
			Description: "Keyword metrics across all regional databases",
			Handler: func(ctx context.Context, args Arguments) (*semrush.ResponseEnvelope, error) {
				a, err := decodeArgs[phraseArgs]("semrush_keyword_overview", args)
				if err != nil {
					return nil, err
				}
				return client.KeywordOverviewAllDatabases(ctx, a.Phrase)
			},
		},
		{
			Name:        "semrush_keyword_overview_db",
			Description: "Keyword metrics for a single regional database",
			Handler: func(ctx context.Context, args Arguments) (*semrush.ResponseEnvelope, error) {
				a, err := decodeArgs[phraseArgs]("semrush_keyword_overview_db", args)
				if err != nil {
					return nil, err
				}
				return client.KeywordOverviewSingleDB(ctx, a.Phrase, a.Database)
			},
		},
		{
			Name:        "semrush_batch_keyword_overview",
			Description: "Keyword metrics for up to 100 phrases in one call",
			Handler: func(ctx context.Context, args Arguments) (*semrush.ResponseEnvelope, error) {
				a, err := decodeArgs[phrasesArgs]("semrush_batch_keyword_overview", args)
				if err != nil {
					return nil, err
				}
				return client.BatchKeywordOverview(ctx, a.Phrases, a.Database)
			},
		},
		{
			Name:        "semrush_related_keywords",
			Description: "Keywords semantically related to a phrase",
			Handler: func(ctx context.Context, args Arguments) (*semrush.ResponseEnvelope, error) {
				a, err := decodeArgs[phraseArgs]("semrush_related_keywords", args)
				if err != nil {
					return nil, err
				}
				return client.RelatedKeywords(ctx, a.Phrase, a.Database, a.Limit)
			},
		},
		{
			Name:        "semrush_broad_match_keywords",
			Description: "Broad matches and alternate forms of a phrase",
			Handler: func(ctx context.Context, args Arguments) (*semrush.ResponseEnvelope, error) {
				a, err := decodeArgs[phraseArgs]("semrush_broad_match_keywords", args)
				if err != nil {
					return nil, err
				}
				return client.BroadMatchKeywords(ctx, a.Phrase, a.Database, a.Limit)
			},
		},
		{
			Name:        "semrush_phrase_questions",
			Description: "Question-form keywords containing a phrase",
			Handler: func(ctx context.Context, args Arguments) (*semrush.ResponseEnvelope, error) {
				a, err := decodeArgs[phraseArgs]("semrush_phrase_questions", args)
				if err != nil {
					return nil, err
				}
				return client.PhraseQuestions(ctx, a.Phrase, a.Database, a.Limit)
			},
		},
		{
			Name:        "semrush_keyword_difficulty",
			Description: "Keyword difficulty index for up to 100 phrases",
			Handler: func(ctx context.Context, args Arguments) (*semrush.ResponseEnvelope, error) {
				a, err := decodeArgs[phrasesArgs]("semrush_keyword_difficulty", args)
				if err != nil {
					return nil, err
				}
				return client.KeywordDifficulty(ctx, a.Phrases, a.Database)
			},
		},
		{
			Name:        "semrush_backlinks_overview",
			Description: "Aggregate backlink metrics for a root domain",
			Handler: func(ctx context.Context, args Arguments) (*semrush.ResponseEnvelope, error) {
				a, err := decodeArgs[targetArgs]("semrush_backlinks_overview", args)
				if err != nil {
					return nil, err
				}
				return client.BacklinksOverview(ctx, a.Target)
			},
		},
		{
			Name:        "semrush_backlinks",
			Description: "Individual backlinks pointing at a root domain",
			Handler: func(ctx context.Context, args Arguments) (*semrush.ResponseEnvelope, error) {
				a, err := decodeArgs[targetArgs]("semrush_backlinks", args)
				if err != nil {
					return nil, err
				}
				return client.Backlinks(ctx, a.Target, a.Limit)
			},
		},
		{
			Name:        "semrush_referring_domains",
			Description: "Domains linking to a root domain",
			Handler: func(ctx context.Context, args Arguments) (*semrush.ResponseEnvelope, error) {
				a, err := decodeArgs[targetArgs]("semrush_referring_domains", args)
				if err != nil {
					return nil, err
				}
				return client.ReferringDomains(ctx, a.Target, a.Limit)
			},
		},
		{
			Name:        "semrush_traffic_summary",
			Description: "Traffic estimates for one or more domains",
			Handler: func(ctx context.Context, args Arguments) (*semrush.ResponseEnvelope, error) {
				a, err := decodeArgs[trafficSummaryArgs]("semrush_traffic_summary", args)
				if err != nil {
					return nil, err
				}
				return client.TrafficSummary(ctx, a.Domains, a.Country)
			},
		},
		{
			Name:        "semrush_traffic_sources",
			Description: "Traffic source breakdown for a domain",
			Handler: func(ctx context.Context, args Arguments) (*semrush.ResponseEnvelope, error) {
				a, err := decodeArgs[trafficSourcesArgs]("semrush_traffic_sources", args)
				if err != nil {
					return nil, err
				}
				return client.TrafficSources(ctx, a.Domain, a.Country)
			},
		},
		{
			Name:        "semrush_api_units_balance",
			Description: "Remaining API unit balance for the configured key",
			Handler: func(ctx context.Context, args Arguments) (*semrush.ResponseEnvelope, error) {
				return client.APIUnitsBalance(ctx)
			},
		},
	}
}
