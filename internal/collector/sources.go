package collector

import (
	"context"
	"encoding/json"

	"github.com/rotisserie/eris"

	"github.com/sells-group/intel-orchestrator/internal/model"
	"github.com/sells-group/intel-orchestrator/pkg/apollo"
	"github.com/sells-group/intel-orchestrator/pkg/brightdata"
	"github.com/sells-group/intel-orchestrator/pkg/proxycurl"
	"github.com/sells-group/intel-orchestrator/pkg/serper"
)

// Dataset ids for the Bright Data marketplace collectors.
const (
	companyDatasetID = "gd_company_profiles"
	techDatasetID    = "gd_company_tech"
)

// WebSearch collects general web results about a company.
func WebSearch(client serper.Client) Collector {
	return Func{ID: model.SourceWebSearch, Fn: func(ctx context.Context, companyName string) (json.RawMessage, error) {
		resp, err := client.Search(ctx, companyName+" company")
		if err != nil {
			return nil, err
		}
		return marshal("web_search", resp)
	}}
}

// NewsScan collects recent news coverage.
func NewsScan(client serper.Client) Collector {
	return Func{ID: model.SourceNewsScan, Fn: func(ctx context.Context, companyName string) (json.RawMessage, error) {
		resp, err := client.News(ctx, companyName)
		if err != nil {
			return nil, err
		}
		if len(resp.News) == 0 {
			return nil, nil // nothing to report
		}
		return marshal("news_scan", resp)
	}}
}

// JobPostings collects active job listings as a hiring signal.
func JobPostings(client serper.Client) Collector {
	return Func{ID: model.SourceJobPostings, Fn: func(ctx context.Context, companyName string) (json.RawMessage, error) {
		resp, err := client.Search(ctx, companyName+" jobs hiring")
		if err != nil {
			return nil, err
		}
		if len(resp.Organic) == 0 {
			return nil, nil
		}
		return marshal("job_postings", resp)
	}}
}

// LinkedInCompany collects the professional-network company profile.
func LinkedInCompany(client proxycurl.Client) Collector {
	return Func{ID: model.SourceLinkedInCompany, Fn: func(ctx context.Context, companyName string) (json.RawMessage, error) {
		profile, err := client.CompanyProfile(ctx, companyName)
		if err != nil {
			return nil, err
		}
		return marshal("linkedin_company", profile)
	}}
}

// ContactEnrichment collects decision-maker contacts.
func ContactEnrichment(client apollo.Client) Collector {
	return Func{ID: model.SourceContactEnrichment, Fn: func(ctx context.Context, companyName string) (json.RawMessage, error) {
		resp, err := client.PeopleSearch(ctx, apollo.PeopleSearchRequest{
			OrganizationName: companyName,
			PersonTitles:     []string{"CEO", "CTO", "VP Sales", "VP Engineering", "Head of Procurement"},
		})
		if err != nil {
			return nil, err
		}
		if len(resp.People) == 0 {
			return nil, nil
		}
		return marshal("contact_enrichment", resp)
	}}
}

// MarketplaceDataset collects the marketplace company snapshot.
func MarketplaceDataset(client brightdata.Client) Collector {
	return Func{ID: model.SourceMarketplaceDataset, Fn: func(ctx context.Context, companyName string) (json.RawMessage, error) {
		return client.CollectCompany(ctx, companyDatasetID, companyName)
	}}
}

// TechLookup collects the company's detected technology stack.
func TechLookup(client brightdata.Client) Collector {
	return Func{ID: model.SourceTechLookup, Fn: func(ctx context.Context, companyName string) (json.RawMessage, error) {
		return client.CollectCompany(ctx, techDatasetID, companyName)
	}}
}

func marshal(source string, v any) (json.RawMessage, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, eris.Wrapf(err, "collector: marshal %s payload", source)
	}
	return data, nil
}
