package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"crm-golang/internal/storage"
)

// Leads

func (c *Client) Leads(ctx context.Context, status, search string) ([]storage.Lead, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	if search != "" {
		q.Set("search", search)
	}
	path := "/api/leads"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out []storage.Lead
	return out, c.get(ctx, path, &out)
}

func (c *Client) Lead(ctx context.Context, id string) (*storage.Lead, error) {
	var out storage.Lead
	return &out, c.get(ctx, "/api/leads/"+id, &out)
}

func (c *Client) CreateLead(ctx context.Context, lead storage.Lead) (*storage.Lead, error) {
	var out storage.Lead
	return &out, c.do(ctx, http.MethodPost, "/api/leads", lead, &out)
}

func (c *Client) UpdateLead(ctx context.Context, id string, patch map[string]any) (*storage.Lead, error) {
	var out storage.Lead
	return &out, c.do(ctx, http.MethodPatch, "/api/leads/"+id, patch, &out)
}

func (c *Client) DeleteLead(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/leads/"+id, nil, nil)
}

func (c *Client) LeadActivities(ctx context.Context, id string) ([]storage.Activity, error) {
	var out []storage.Activity
	return out, c.get(ctx, "/api/leads/"+id+"/activities", &out)
}

func (c *Client) LeadContacts(ctx context.Context, id string) ([]storage.Contact, error) {
	var out []storage.Contact
	return out, c.get(ctx, "/api/leads/"+id+"/contacts", &out)
}

func (c *Client) LeadDeals(ctx context.Context, id string) ([]storage.Deal, error) {
	var out []storage.Deal
	return out, c.get(ctx, "/api/leads/"+id+"/deals", &out)
}

func (c *Client) LeadFiles(ctx context.Context, id string) ([]storage.LeadFile, error) {
	var out []storage.LeadFile
	return out, c.get(ctx, "/api/leads/"+id+"/files", &out)
}

// Accounts

func (c *Client) Accounts(ctx context.Context) ([]storage.Account, error) {
	var out []storage.Account
	return out, c.get(ctx, "/api/accounts", &out)
}

func (c *Client) Account(ctx context.Context, id string) (*storage.Account, error) {
	var out storage.Account
	return &out, c.get(ctx, "/api/accounts/"+id, &out)
}

func (c *Client) CreateAccount(ctx context.Context, account storage.Account) (*storage.Account, error) {
	var out storage.Account
	return &out, c.do(ctx, http.MethodPost, "/api/accounts", account, &out)
}

func (c *Client) UpdateAccount(ctx context.Context, id string, patch map[string]any) (*storage.Account, error) {
	var out storage.Account
	return &out, c.do(ctx, http.MethodPatch, "/api/accounts/"+id, patch, &out)
}

func (c *Client) DeleteAccount(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/accounts/"+id, nil, nil)
}

func (c *Client) AccountActivities(ctx context.Context, id string) ([]storage.Activity, error) {
	var out []storage.Activity
	return out, c.get(ctx, "/api/accounts/"+id+"/activities", &out)
}

func (c *Client) AccountSyncStatus(ctx context.Context, id string) ([]storage.SyncRun, error) {
	var out []storage.SyncRun
	return out, c.get(ctx, "/api/accounts/"+id+"/sync-status", &out)
}

func (c *Client) SyncAccountActivities(ctx context.Context, id string) (*storage.SyncRun, error) {
	var out storage.SyncRun
	return &out, c.do(ctx, http.MethodPost, "/api/accounts/"+id+"/sync-activities", nil, &out)
}

func (c *Client) SyncAccountToLeadgen(ctx context.Context, id string) (*storage.SyncRun, error) {
	var out storage.SyncRun
	return &out, c.do(ctx, http.MethodPost, "/api/accounts/"+id+"/sync-to-leadgen", nil, &out)
}

func (c *Client) EnrichAccount(ctx context.Context, id string) (*storage.AccountEnrichment, error) {
	var out storage.AccountEnrichment
	return &out, c.do(ctx, http.MethodPost, "/api/accounts/"+id+"/enrich", nil, &out)
}

// AccountEnrichment returns the stored snapshot, or nil when the account
// has never been enriched (204).
func (c *Client) AccountEnrichment(ctx context.Context, id string) (*storage.AccountEnrichment, error) {
	var out storage.AccountEnrichment
	status, err := c.doStatus(ctx, http.MethodGet, "/api/accounts/"+id+"/enrichment", nil, &out)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNoContent {
		return nil, nil
	}
	return &out, nil
}

// Contacts

func (c *Client) Contacts(ctx context.Context) ([]storage.Contact, error) {
	var out []storage.Contact
	return out, c.get(ctx, "/api/contacts", &out)
}

func (c *Client) ContactsByAccount(ctx context.Context, accountID string) ([]storage.Contact, error) {
	var out []storage.Contact
	return out, c.get(ctx, "/api/contacts/by-account/"+accountID, &out)
}

func (c *Client) CreateContact(ctx context.Context, contact storage.Contact) (*storage.Contact, error) {
	var out storage.Contact
	return &out, c.do(ctx, http.MethodPost, "/api/contacts", contact, &out)
}

// Deals

func (c *Client) Deals(ctx context.Context) ([]storage.Deal, error) {
	var out []storage.Deal
	return out, c.get(ctx, "/api/deals", &out)
}

func (c *Client) Deal(ctx context.Context, id string) (*storage.Deal, error) {
	var out storage.Deal
	return &out, c.get(ctx, "/api/deals/"+id, &out)
}

func (c *Client) DealsByAccount(ctx context.Context, accountID string) ([]storage.Deal, error) {
	var out []storage.Deal
	return out, c.get(ctx, "/api/deals/by-account/"+accountID, &out)
}

// CreateDeal submits a finished wizard record. It satisfies the wizard's
// Submitter contract.
func (c *Client) CreateDeal(ctx context.Context, rec storage.DealRecord) (*storage.Deal, error) {
	var out storage.Deal
	if err := c.do(ctx, http.MethodPost, "/api/deals", rec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateDeal(ctx context.Context, id string, patch map[string]any) (*storage.Deal, error) {
	var out storage.Deal
	return &out, c.do(ctx, http.MethodPatch, "/api/deals/"+id, patch, &out)
}

func (c *Client) DeleteDeal(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/deals/"+id, nil, nil)
}

// Draft slot

// Draft returns the persisted server-side draft, or nil when the slot is
// empty (204).
func (c *Client) Draft(ctx context.Context) (*storage.DealRecord, error) {
	var out storage.DealRecord
	status, err := c.doStatus(ctx, http.MethodGet, "/api/deals/draft", nil, &out)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNoContent {
		return nil, nil
	}
	return &out, nil
}

func (c *Client) SaveDraft(ctx context.Context, rec storage.DealRecord) error {
	return c.do(ctx, http.MethodPut, "/api/deals/draft", rec, nil)
}

func (c *Client) ClearDraft(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/deals/draft", nil, nil)
}

// Activities, tasks, meetings

func (c *Client) Activities(ctx context.Context) ([]storage.Activity, error) {
	var out []storage.Activity
	return out, c.get(ctx, "/api/activities", &out)
}

func (c *Client) CreateActivity(ctx context.Context, a storage.Activity) (*storage.Activity, error) {
	var out storage.Activity
	return &out, c.do(ctx, http.MethodPost, "/api/activities", a, &out)
}

func (c *Client) Tasks(ctx context.Context) ([]storage.Task, error) {
	var out []storage.Task
	return out, c.get(ctx, "/api/tasks", &out)
}

func (c *Client) CreateTask(ctx context.Context, t storage.Task) (*storage.Task, error) {
	var out storage.Task
	return &out, c.do(ctx, http.MethodPost, "/api/tasks", t, &out)
}

func (c *Client) Meetings(ctx context.Context) ([]storage.Meeting, error) {
	var out []storage.Meeting
	return out, c.get(ctx, "/api/meetings", &out)
}

func (c *Client) CreateMeeting(ctx context.Context, m storage.Meeting) (*storage.Meeting, error) {
	var out storage.Meeting
	return &out, c.do(ctx, http.MethodPost, "/api/meetings", m, &out)
}

// Sync

func (c *Client) ManualSync(ctx context.Context, module string, req storage.SyncRequest) (*storage.SyncRun, error) {
	var out storage.SyncRun
	return &out, c.do(ctx, http.MethodPost, "/api/sync/manual/"+module, req, &out)
}

func (c *Client) SyncStatus(ctx context.Context) ([]storage.SyncRun, error) {
	var out []storage.SyncRun
	return out, c.get(ctx, "/api/sync/status", &out)
}
