package hierarchy

import "strings"

// SectorTeam is a team in the business. It owns HVC groups, targets (via
// campaign membership) and CDMS sectors.
type SectorTeam struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ParentSector is a CDMS grouping of CDMS sectors
type ParentSector struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	SectorTeamID int64  `json:"-"`
}

// Sector is one entry in the CDMS sector list
type Sector struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	SectorTeamID   int64  `json:"-"`
	ParentSectorID int64  `json:"-"`
}

// HVCGroup is how sector teams organise their campaigns, e.g. France
// Agritech and Spain Agritech grouped into Agritech.
type HVCGroup struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	SectorTeamID int64  `json:"-"`
}

// OverseasRegion groups countries
type OverseasRegion struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Country is a DIT country within an overseas region
type Country struct {
	ID               int64  `json:"id"`
	Code             string `json:"code"`
	Name             string `json:"name"`
	OverseasRegionID int64  `json:"-"`
}

// Target is the KPI goal for one campaign. Name comes from the HVC record
// and is always "<Campaign name>: <code>".
type Target struct {
	CampaignID   string `json:"campaign_id"`
	Name         string `json:"name"`
	Target       int64  `json:"target"`
	SectorTeamID int64  `json:"-"`
	HVCGroupID   int64  `json:"-"`
	CountryID    int64  `json:"-"`
}

// CampaignName returns the display name without the trailing code
func (t Target) CampaignName() string {
	return strings.SplitN(t.Name, ":", 2)[0]
}

// CampaignIDs returns the campaign codes of the given targets, in order
func CampaignIDs(targets []Target) []string {
	ids := make([]string, 0, len(targets))
	for _, t := range targets {
		ids = append(ids, t.CampaignID)
	}
	return ids
}
