package semrush

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// The operation methods below are thin declarative mappings from typed
// arguments onto the fixed upstream query-parameter templates. The
// report type and export_columns values select response columns upstream
// and are part of the provider contract; do not edit them casually.

const defaultDatabase = "us"

// database normalizes the optional regional database argument.
func database(db string) string {
	if strings.TrimSpace(db) == "" {
		return defaultDatabase
	}
	return db
}

// reportParams assembles the common parameter set for a primary-endpoint
// report. The display limit is omitted entirely when the caller supplied
// none; upstream treats a missing parameter as "no limit".
func reportParams(reportType string, columns string, limit *int) url.Values {
	params := url.Values{}
	params.Set("type", reportType)
	params.Set("export_columns", columns)
	if limit != nil {
		params.Set("display_limit", strconv.Itoa(*limit))
	}
	return params
}

// DomainOverview returns ranking data for a domain across all regional
// databases.
func (c *Client) DomainOverview(ctx context.Context, domain string) (*ResponseEnvelope, error) {
	params := reportParams("domain_ranks", "Db,Dn,Rk,Or,Ot,Oc,Ad,At,Ac", nil)
	params.Set("domain", domain)
	return c.fetch(ctx, c.baseURL, params)
}

// DomainOverviewSingleDB returns ranking data for a domain in one
// regional database.
func (c *Client) DomainOverviewSingleDB(ctx context.Context, domain, db string) (*ResponseEnvelope, error) {
	params := reportParams("domain_rank", "Dn,Rk,Or,Ot,Oc,Ad,At,Ac", nil)
	params.Set("domain", domain)
	params.Set("database", database(db))
	return c.fetch(ctx, c.baseURL, params)
}

// DomainOrganicKeywords returns the keywords a domain ranks for in
// organic search.
func (c *Client) DomainOrganicKeywords(ctx context.Context, domain, db string, limit *int) (*ResponseEnvelope, error) {
	params := reportParams("domain_organic", "Ph,Po,Pp,Pd,Nq,Cp,Ur,Tr,Tg,Tc,Co,Nr,Td", limit)
	params.Set("domain", domain)
	params.Set("database", database(db))
	return c.fetch(ctx, c.baseURL, params)
}

// DomainPaidKeywords returns the keywords a domain bids on in paid search.
func (c *Client) DomainPaidKeywords(ctx context.Context, domain, db string, limit *int) (*ResponseEnvelope, error) {
	params := reportParams("domain_adwords", "Ph,Po,Pp,Pd,Ab,Nq,Cp,Tr,Tc,Co,Nr,Td", limit)
	params.Set("domain", domain)
	params.Set("database", database(db))
	return c.fetch(ctx, c.baseURL, params)
}

// DomainOrganicCompetitors returns domains competing in organic search.
func (c *Client) DomainOrganicCompetitors(ctx context.Context, domain, db string, limit *int) (*ResponseEnvelope, error) {
	params := reportParams("domain_organic_organic", "Dn,Cr,Np,Or,Ot,Oc,Ad", limit)
	params.Set("domain", domain)
	params.Set("database", database(db))
	return c.fetch(ctx, c.baseURL, params)
}

// DomainPaidCompetitors returns domains competing in paid search.
func (c *Client) DomainPaidCompetitors(ctx context.Context, domain, db string, limit *int) (*ResponseEnvelope, error) {
	params := reportParams("domain_adwords_adwords", "Dn,Cr,Np,Ad,At,Ac,Or", limit)
	params.Set("domain", domain)
	params.Set("database", database(db))
	return c.fetch(ctx, c.baseURL, params)
}

// KeywordOverviewAllDatabases returns keyword metrics across all regional
// databases.
func (c *Client) KeywordOverviewAllDatabases(ctx context.Context, phrase string) (*ResponseEnvelope, error) {
	params := reportParams("phrase_all", "Dt,Db,Ph,Nq,Cp,Co,Nr", nil)
	params.Set("phrase", phrase)
	return c.fetch(ctx, c.baseURL, params)
}

// KeywordOverviewSingleDB returns keyword metrics for one regional
// database.
func (c *Client) KeywordOverviewSingleDB(ctx context.Context, phrase, db string) (*ResponseEnvelope, error) {
	params := reportParams("phrase_this", "Ph,Nq,Cp,Co,Nr,Td,In,Kd", nil)
	params.Set("phrase", phrase)
	params.Set("database", database(db))
	return c.fetch(ctx, c.baseURL, params)
}

// BatchKeywordOverview returns keyword metrics for up to 100 phrases in
// one call. Phrases travel as a single semicolon-joined parameter per the
// upstream's flat query-string convention.
func (c *Client) BatchKeywordOverview(ctx context.Context, phrases []string, db string) (*ResponseEnvelope, error) {
	params := reportParams("phrase_these", "Ph,Nq,Cp,Co,Nr,Td,In,Kd", nil)
	params.Set("phrase", strings.Join(phrases, ";"))
	params.Set("database", database(db))
	return c.fetch(ctx, c.baseURL, params)
}

// RelatedKeywords returns keywords semantically related to a phrase.
func (c *Client) RelatedKeywords(ctx context.Context, phrase, db string, limit *int) (*ResponseEnvelope, error) {
	params := reportParams("phrase_related", "Ph,Nq,Cp,Co,Nr,Td,Rr,Fk", limit)
	params.Set("phrase", phrase)
	params.Set("database", database(db))
	return c.fetch(ctx, c.baseURL, params)
}

// BroadMatchKeywords returns broad-match and alternate-form keywords for
// a phrase.
func (c *Client) BroadMatchKeywords(ctx context.Context, phrase, db string, limit *int) (*ResponseEnvelope, error) {
	params := reportParams("phrase_fullsearch", "Ph,Nq,Cp,Co,Nr,Td,Fk", limit)
	params.Set("phrase", phrase)
	params.Set("database", database(db))
	return c.fetch(ctx, c.baseURL, params)
}

// PhraseQuestions returns question-form keywords containing a phrase.
func (c *Client) PhraseQuestions(ctx context.Context, phrase, db string, limit *int) (*ResponseEnvelope, error) {
	params := reportParams("phrase_questions", "Ph,Nq,Cp,Co,Nr,Td", limit)
	params.Set("phrase", phrase)
	params.Set("database", database(db))
	return c.fetch(ctx, c.baseURL, params)
}

// KeywordDifficulty returns the difficulty index for up to 100 phrases.
func (c *Client) KeywordDifficulty(ctx context.Context, phrases []string, db string) (*ResponseEnvelope, error) {
	params := reportParams("phrase_kdi", "Ph,Kd", nil)
	params.Set("phrase", strings.Join(phrases, ";"))
	params.Set("database", database(db))
	return c.fetch(ctx, c.baseURL, params)
}

// BacklinksOverview returns aggregate backlink metrics for a root domain.
func (c *Client) BacklinksOverview(ctx context.Context, target string) (*ResponseEnvelope, error) {
	params := reportParams("backlinks_overview",
		"ascore,total,domains_num,urls_num,ips_num,ipclassc_num,follows_num,nofollows_num,sponsored_num,ugc_num,texts_num,images_num,forms_num,frames_num", nil)
	params.Set("target", target)
	params.Set("target_type", "root_domain")
	return c.fetch(ctx, c.baseURL, params)
}

// Backlinks returns individual backlinks pointing at a root domain.
func (c *Client) Backlinks(ctx context.Context, target string, limit *int) (*ResponseEnvelope, error) {
	params := reportParams("backlinks",
		"page_ascore,source_title,source_url,target_url,anchor,external_num,internal_num,first_seen,last_seen", limit)
	params.Set("target", target)
	params.Set("target_type", "root_domain")
	return c.fetch(ctx, c.baseURL, params)
}

// ReferringDomains returns the domains linking to a root domain.
func (c *Client) ReferringDomains(ctx context.Context, target string, limit *int) (*ResponseEnvelope, error) {
	params := reportParams("backlinks_refdomains",
		"domain_ascore,domain,backlinks_num,ip,country,first_seen,last_seen", limit)
	params.Set("target", target)
	params.Set("target_type", "root_domain")
	return c.fetch(ctx, c.baseURL, params)
}

// TrafficSummary returns traffic estimates for one or more domains from
// the trends endpoint. Domains travel comma-joined.
func (c *Client) TrafficSummary(ctx context.Context, domains []string, country string) (*ResponseEnvelope, error) {
	params := url.Values{}
	params.Set("domains", strings.Join(domains, ","))
	params.Set("country", database(country))
	params.Set("date", "all")
	return c.fetch(ctx, c.trendsURL+"/summary", params)
}

// TrafficSources returns traffic source breakdown for a domain from the
// trends endpoint.
func (c *Client) TrafficSources(ctx context.Context, domain, country string) (*ResponseEnvelope, error) {
	params := url.Values{}
	params.Set("domain", domain)
	params.Set("country", database(country))
	params.Set("date", "all")
	return c.fetch(ctx, c.trendsURL+"/sources", params)
}

// APIUnitsBalance returns the remaining API unit balance for the
// configured credential. The balance endpoint takes only the key.
func (c *Client) APIUnitsBalance(ctx context.Context) (*ResponseEnvelope, error) {
	return c.fetch(ctx, strings.TrimSuffix(c.baseURL, "/")+"/users/countapiunits.html", url.Values{})
}
