package mi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/uktrade/export-wins-mi/internal/modules/hierarchy"
	"github.com/uktrade/export-wins-mi/internal/modules/wins"
	"github.com/uktrade/export-wins-mi/pkg/finyear"
	"github.com/uktrade/export-wins-mi/pkg/formulas"
)

const topNonHVCLimit = 5

// Handler serves the MI report endpoints. Every report covers the current
// financial year; the clock is injectable so year boundaries are testable.
type Handler struct {
	winsRepo *wins.Repository
	hierRepo *hierarchy.Repository
	cache    *ReportCache
	log      zerolog.Logger
	now      func() time.Time
}

// NewHandler creates a new MI handler
func NewHandler(winsRepo *wins.Repository, hierRepo *hierarchy.Repository,
	cache *ReportCache, log zerolog.Logger) *Handler {
	return &Handler{
		winsRepo: winsRepo,
		hierRepo: hierRepo,
		cache:    cache,
		log:      log.With().Str("handler", "mi").Logger(),
		now:      time.Now,
	}
}

func (h *Handler) year() (now, start, end time.Time) {
	now = h.now()
	return now, finyear.Start(now), finyear.End(now)
}

func (h *Handler) respondJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}

// respondNotFound writes the dashboard's error contract: a 400 with
// {"error": "<entity> not found"}
func (h *Handler) respondNotFound(w http.ResponseWriter, entity string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]string{"error": entity + " not found"})
}

func (h *Handler) respondError(w http.ResponseWriter, err error, msg string) {
	h.log.Error().Err(err).Msg(msg)
	http.Error(w, msg, http.StatusInternalServerError)
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// sector teams

type sectorTeamListEntry struct {
	ID        int64                `json:"id"`
	Name      string               `json:"name"`
	HVCGroups []hierarchy.HVCGroup `json:"hvc_groups"`
}

// HandleListSectorTeams handles GET /sector_teams/ - teams with their groups
func (h *Handler) HandleListSectorTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.hierRepo.ListSectorTeams()
	if err != nil {
		h.respondError(w, err, "Failed to list sector teams")
		return
	}

	entries := make([]sectorTeamListEntry, 0, len(teams))
	for _, team := range teams {
		groups, err := h.hierRepo.HVCGroupsForTeam(team.ID)
		if err != nil {
			h.respondError(w, err, "Failed to list HVC groups")
			return
		}
		if groups == nil {
			groups = []hierarchy.HVCGroup{}
		}
		entries = append(entries, sectorTeamListEntry{ID: team.ID, Name: team.Name, HVCGroups: groups})
	}

	h.respondJSON(w, entries)
}

// teamScope is everything a sector team report needs in one fetch
type teamScope struct {
	team          *hierarchy.SectorTeam
	targets       []hierarchy.Target
	sectorIDs     []int64
	hvcWins       []wins.Win
	nonHVCWins    []wins.Win
	notifications []wins.ConfirmedNotification
}

// loadTeam gathers a team's targets, wins and notifications for the current
// financial year. A nil scope with a nil error means the id did not resolve.
func (h *Handler) loadTeam(id int64, start, end time.Time) (*teamScope, error) {
	team, err := h.hierRepo.GetSectorTeam(id)
	if err != nil || team == nil {
		return nil, err
	}

	scope := &teamScope{team: team}
	if scope.targets, err = h.hierRepo.TargetsForTeam(id); err != nil {
		return nil, err
	}
	if scope.sectorIDs, err = h.hierRepo.SectorIDsForTeam(id); err != nil {
		return nil, err
	}
	if scope.hvcWins, err = h.winsRepo.ByCampaigns(start, end, hierarchy.CampaignIDs(scope.targets)); err != nil {
		return nil, err
	}
	if scope.nonHVCWins, err = h.winsRepo.NonHVCBySectors(start, end, scope.sectorIDs); err != nil {
		return nil, err
	}
	scope.notifications, err = h.winsRepo.ConfirmedCustomerNotifications(wins.NotificationFilter{Sectors: scope.sectorIDs})
	if err != nil {
		return nil, err
	}
	return scope, nil
}

// HandleSectorTeamDetail handles GET /sector_teams/{id}/
func (h *Handler) HandleSectorTeamDetail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondNotFound(w, "sector team")
		return
	}
	_, start, end := h.year()

	scope, err := h.loadTeam(id, start, end)
	if err != nil {
		h.respondError(w, err, "Failed to build sector team detail")
		return
	}
	if scope == nil {
		h.respondNotFound(w, "sector team")
		return
	}

	allWins := append(append([]wins.Win{}, scope.hvcWins...), scope.nonHVCWins...)
	h.respondJSON(w, BuildDetail(scope.team.Name, scope.targets, allWins, scope.notifications, true))
}

// HandleSectorTeamMonths handles GET /sector_teams/{id}/months/
func (h *Handler) HandleSectorTeamMonths(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondNotFound(w, "sector team")
		return
	}
	now, start, end := h.year()

	scope, err := h.loadTeam(id, start, end)
	if err != nil {
		h.respondError(w, err, "Failed to build sector team months")
		return
	}
	if scope == nil {
		h.respondNotFound(w, "sector team")
		return
	}

	allWins := append(append([]wins.Win{}, scope.hvcWins...), scope.nonHVCWins...)
	h.respondJSON(w, BuildMonths(scope.team.Name, scope.targets, allWins, scope.notifications, now, true))
}

// HandleSectorTeamCampaigns handles GET /sector_teams/{id}/campaigns/
func (h *Handler) HandleSectorTeamCampaigns(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondNotFound(w, "sector team")
		return
	}
	now, start, end := h.year()

	scope, err := h.loadTeam(id, start, end)
	if err != nil {
		h.respondError(w, err, "Failed to build sector team campaigns")
		return
	}
	if scope == nil {
		h.respondNotFound(w, "sector team")
		return
	}

	report, err := BuildCampaigns(scope.team.Name, scope.targets, scope.hvcWins, scope.notifications, now)
	if err != nil {
		h.respondNotFound(w, "campaign")
		return
	}
	h.respondJSON(w, report)
}

// HandleSectorTeamTopNonHVC handles GET /sector_teams/{id}/top_non_hvcs/
func (h *Handler) HandleSectorTeamTopNonHVC(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondNotFound(w, "sector team")
		return
	}
	_, start, end := h.year()

	team, err := h.hierRepo.GetSectorTeam(id)
	if err != nil {
		h.respondError(w, err, "Failed to get sector team")
		return
	}
	if team == nil {
		h.respondNotFound(w, "sector team")
		return
	}

	sectorIDs, err := h.hierRepo.SectorIDsForTeam(id)
	if err != nil {
		h.respondError(w, err, "Failed to list team sectors")
		return
	}

	aggregates, err := h.winsRepo.TopNonHVC(start, end, sectorIDs, nil, topNonHVCLimit)
	if err != nil {
		h.respondError(w, err, "Failed to aggregate non-HVC wins")
		return
	}

	h.respondTopNonHVC(w, aggregates)
}

// HandleSectorTeamsOverview handles GET /sector_teams/overview/
func (h *Handler) HandleSectorTeamsOverview(w http.ResponseWriter, r *http.Request) {
	var entries []OverviewEntry
	hit, err := h.cache.Get(CacheKeySectorTeamsOverview, &entries)
	if err != nil {
		h.log.Warn().Err(err).Msg("Overview cache read failed")
	}
	if !hit {
		if entries, err = h.SectorTeamsOverview(); err != nil {
			h.respondError(w, err, "Failed to build sector teams overview")
			return
		}
		if err := h.cache.Put(CacheKeySectorTeamsOverview, entries); err != nil {
			h.log.Warn().Err(err).Msg("Overview cache write failed")
		}
	}
	h.respondJSON(w, entries)
}

// SectorTeamsOverview builds the full overview: one entry per sector team
// with combined totals and nested per-group figures. Also driven by the
// scheduled cache refresh.
func (h *Handler) SectorTeamsOverview() ([]OverviewEntry, error) {
	now, start, end := h.year()
	daysIntoYear := DaysIntoYear(now)

	teams, err := h.hierRepo.ListSectorTeams()
	if err != nil {
		return nil, err
	}

	entries := make([]OverviewEntry, 0, len(teams))
	for _, team := range teams {
		scope, err := h.loadTeam(team.ID, start, end)
		if err != nil {
			return nil, err
		}
		if scope == nil {
			return nil, fmt.Errorf("sector team %d vanished during overview build", team.ID)
		}

		entry := BuildNodeOverview(team.ID, team.Name, scope.hvcWins, scope.targets, daysIntoYear)
		AttachNonHVC(&entry, scope.hvcWins, scope.nonHVCWins, true)

		groups, err := h.hierRepo.HVCGroupsForTeam(team.ID)
		if err != nil {
			return nil, err
		}
		for _, group := range groups {
			groupTargets, err := h.hierRepo.TargetsForGroup(group.ID)
			if err != nil {
				return nil, err
			}
			groupWins, err := h.winsRepo.ByCampaigns(start, end, hierarchy.CampaignIDs(groupTargets))
			if err != nil {
				return nil, err
			}
			entry.HVCGroups = append(entry.HVCGroups,
				BuildNodeOverview(group.ID, group.Name, groupWins, groupTargets, daysIntoYear))
		}

		entries = append(entries, entry)
	}
	return entries, nil
}

// HVC groups

// HandleListHVCGroups handles GET /hvc_groups/
func (h *Handler) HandleListHVCGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.hierRepo.ListHVCGroups()
	if err != nil {
		h.respondError(w, err, "Failed to list HVC groups")
		return
	}
	if groups == nil {
		groups = []hierarchy.HVCGroup{}
	}
	h.respondJSON(w, groups)
}

// groupScope mirrors teamScope for an HVC group. Groups hold campaign wins
// only, so there is no non-HVC side.
type groupScope struct {
	group         *hierarchy.HVCGroup
	targets       []hierarchy.Target
	hvcWins       []wins.Win
	notifications []wins.ConfirmedNotification
}

func (h *Handler) loadGroup(id int64, start, end time.Time) (*groupScope, error) {
	group, err := h.hierRepo.GetHVCGroup(id)
	if err != nil || group == nil {
		return nil, err
	}

	scope := &groupScope{group: group}
	if scope.targets, err = h.hierRepo.TargetsForGroup(id); err != nil {
		return nil, err
	}
	campaigns := hierarchy.CampaignIDs(scope.targets)
	if scope.hvcWins, err = h.winsRepo.ByCampaigns(start, end, campaigns); err != nil {
		return nil, err
	}
	scope.notifications, err = h.winsRepo.ConfirmedCustomerNotifications(wins.NotificationFilter{Campaigns: campaigns})
	if err != nil {
		return nil, err
	}
	return scope, nil
}

// HandleHVCGroupDetail handles GET /hvc_groups/{id}/
func (h *Handler) HandleHVCGroupDetail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondNotFound(w, "hvc group")
		return
	}
	_, start, end := h.year()

	scope, err := h.loadGroup(id, start, end)
	if err != nil {
		h.respondError(w, err, "Failed to build HVC group detail")
		return
	}
	if scope == nil {
		h.respondNotFound(w, "hvc group")
		return
	}

	h.respondJSON(w, BuildDetail(scope.group.Name, scope.targets, scope.hvcWins, scope.notifications, false))
}

// HandleHVCGroupMonths handles GET /hvc_groups/{id}/months/
func (h *Handler) HandleHVCGroupMonths(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondNotFound(w, "hvc group")
		return
	}
	now, start, end := h.year()

	scope, err := h.loadGroup(id, start, end)
	if err != nil {
		h.respondError(w, err, "Failed to build HVC group months")
		return
	}
	if scope == nil {
		h.respondNotFound(w, "hvc group")
		return
	}

	h.respondJSON(w, BuildMonths(scope.group.Name, scope.targets, scope.hvcWins, scope.notifications, now, false))
}

// HandleHVCGroupCampaigns handles GET /hvc_groups/{id}/campaigns/
func (h *Handler) HandleHVCGroupCampaigns(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondNotFound(w, "hvc group")
		return
	}
	now, start, end := h.year()

	scope, err := h.loadGroup(id, start, end)
	if err != nil {
		h.respondError(w, err, "Failed to build HVC group campaigns")
		return
	}
	if scope == nil {
		h.respondNotFound(w, "hvc group")
		return
	}

	report, err := BuildCampaigns(scope.group.Name, scope.targets, scope.hvcWins, scope.notifications, now)
	if err != nil {
		h.respondNotFound(w, "campaign")
		return
	}
	h.respondJSON(w, report)
}

// overseas regions

// HandleListRegions handles GET /os_regions/
func (h *Handler) HandleListRegions(w http.ResponseWriter, r *http.Request) {
	regions, err := h.hierRepo.ListRegions()
	if err != nil {
		h.respondError(w, err, "Failed to list overseas regions")
		return
	}
	if regions == nil {
		regions = []hierarchy.OverseasRegion{}
	}
	h.respondJSON(w, regions)
}

type regionScope struct {
	region        *hierarchy.OverseasRegion
	targets       []hierarchy.Target
	countryCodes  []string
	hvcWins       []wins.Win
	nonHVCWins    []wins.Win
	notifications []wins.ConfirmedNotification
}

func (h *Handler) loadRegion(id int64, start, end time.Time) (*regionScope, error) {
	region, err := h.hierRepo.GetRegion(id)
	if err != nil || region == nil {
		return nil, err
	}

	scope := &regionScope{region: region}
	if scope.targets, err = h.hierRepo.TargetsForRegion(id); err != nil {
		return nil, err
	}
	if scope.countryCodes, err = h.hierRepo.CountryCodesForRegion(id); err != nil {
		return nil, err
	}
	if scope.hvcWins, err = h.winsRepo.ByCampaigns(start, end, hierarchy.CampaignIDs(scope.targets)); err != nil {
		return nil, err
	}
	if scope.nonHVCWins, err = h.winsRepo.NonHVCByCountries(start, end, scope.countryCodes); err != nil {
		return nil, err
	}
	scope.notifications, err = h.winsRepo.ConfirmedCustomerNotifications(wins.NotificationFilter{Countries: scope.countryCodes})
	if err != nil {
		return nil, err
	}
	return scope, nil
}

// HandleRegionDetail handles GET /os_regions/{id}/
func (h *Handler) HandleRegionDetail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondNotFound(w, "overseas region")
		return
	}
	_, start, end := h.year()

	scope, err := h.loadRegion(id, start, end)
	if err != nil {
		h.respondError(w, err, "Failed to build region detail")
		return
	}
	if scope == nil {
		h.respondNotFound(w, "overseas region")
		return
	}

	allWins := append(append([]wins.Win{}, scope.hvcWins...), scope.nonHVCWins...)
	h.respondJSON(w, BuildDetail(scope.region.Name, scope.targets, allWins, scope.notifications, true))
}

// HandleRegionMonths handles GET /os_regions/{id}/months/
func (h *Handler) HandleRegionMonths(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondNotFound(w, "overseas region")
		return
	}
	now, start, end := h.year()

	scope, err := h.loadRegion(id, start, end)
	if err != nil {
		h.respondError(w, err, "Failed to build region months")
		return
	}
	if scope == nil {
		h.respondNotFound(w, "overseas region")
		return
	}

	allWins := append(append([]wins.Win{}, scope.hvcWins...), scope.nonHVCWins...)
	h.respondJSON(w, BuildMonths(scope.region.Name, scope.targets, allWins, scope.notifications, now, true))
}

// HandleRegionCampaigns handles GET /os_regions/{id}/campaigns/
func (h *Handler) HandleRegionCampaigns(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondNotFound(w, "overseas region")
		return
	}
	now, start, end := h.year()

	scope, err := h.loadRegion(id, start, end)
	if err != nil {
		h.respondError(w, err, "Failed to build region campaigns")
		return
	}
	if scope == nil {
		h.respondNotFound(w, "overseas region")
		return
	}

	report, err := BuildCampaigns(scope.region.Name, scope.targets, scope.hvcWins, scope.notifications, now)
	if err != nil {
		h.respondNotFound(w, "campaign")
		return
	}
	h.respondJSON(w, report)
}

// HandleRegionTopNonHVC handles GET /os_regions/{id}/top_non_hvcs/
func (h *Handler) HandleRegionTopNonHVC(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondNotFound(w, "overseas region")
		return
	}
	_, start, end := h.year()

	region, err := h.hierRepo.GetRegion(id)
	if err != nil {
		h.respondError(w, err, "Failed to get overseas region")
		return
	}
	if region == nil {
		h.respondNotFound(w, "overseas region")
		return
	}

	codes, err := h.hierRepo.CountryCodesForRegion(id)
	if err != nil {
		h.respondError(w, err, "Failed to list region countries")
		return
	}

	aggregates, err := h.winsRepo.TopNonHVC(start, end, nil, codes, topNonHVCLimit)
	if err != nil {
		h.respondError(w, err, "Failed to aggregate non-HVC wins")
		return
	}

	h.respondTopNonHVC(w, aggregates)
}

// HandleRegionsOverview handles GET /os_regions/overview/
func (h *Handler) HandleRegionsOverview(w http.ResponseWriter, r *http.Request) {
	var entries []OverviewEntry
	hit, err := h.cache.Get(CacheKeyRegionsOverview, &entries)
	if err != nil {
		h.log.Warn().Err(err).Msg("Overview cache read failed")
	}
	if !hit {
		if entries, err = h.RegionsOverview(); err != nil {
			h.respondError(w, err, "Failed to build regions overview")
			return
		}
		if err := h.cache.Put(CacheKeyRegionsOverview, entries); err != nil {
			h.log.Warn().Err(err).Msg("Overview cache write failed")
		}
	}
	h.respondJSON(w, entries)
}

// RegionsOverview builds one overview entry per overseas region. Regions
// carry a market count instead of combined totals.
func (h *Handler) RegionsOverview() ([]OverviewEntry, error) {
	now, start, end := h.year()
	daysIntoYear := DaysIntoYear(now)

	regions, err := h.hierRepo.ListRegions()
	if err != nil {
		return nil, err
	}

	entries := make([]OverviewEntry, 0, len(regions))
	for _, region := range regions {
		scope, err := h.loadRegion(region.ID, start, end)
		if err != nil {
			return nil, err
		}
		if scope == nil {
			return nil, fmt.Errorf("overseas region %d vanished during overview build", region.ID)
		}

		entry := BuildNodeOverview(region.ID, region.Name, scope.hvcWins, scope.targets, daysIntoYear)
		AttachNonHVC(&entry, scope.hvcWins, scope.nonHVCWins, false)
		entry.Markets = len(scope.countryCodes)
		entries = append(entries, entry)
	}
	return entries, nil
}

// RefreshOverviews recomputes and stores both overview snapshots. Driven by
// the scheduler so dashboard requests hit a warm cache.
func (h *Handler) RefreshOverviews() error {
	teams, err := h.SectorTeamsOverview()
	if err != nil {
		return fmt.Errorf("failed to build sector teams overview: %w", err)
	}
	if err := h.cache.Put(CacheKeySectorTeamsOverview, teams); err != nil {
		return err
	}

	regions, err := h.RegionsOverview()
	if err != nil {
		return fmt.Errorf("failed to build regions overview: %w", err)
	}
	return h.cache.Put(CacheKeyRegionsOverview, regions)
}

// countries and parent sectors

// HandleListCountries handles GET /countries/
func (h *Handler) HandleListCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.hierRepo.ListCountries()
	if err != nil {
		h.respondError(w, err, "Failed to list countries")
		return
	}
	if countries == nil {
		countries = []hierarchy.Country{}
	}
	h.respondJSON(w, countries)
}

// HandleCountryDetail handles GET /countries/{id}/
func (h *Handler) HandleCountryDetail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondNotFound(w, "country")
		return
	}
	_, start, end := h.year()

	country, err := h.hierRepo.GetCountry(id)
	if err != nil {
		h.respondError(w, err, "Failed to get country")
		return
	}
	if country == nil {
		h.respondNotFound(w, "country")
		return
	}

	targets, err := h.hierRepo.TargetsForCountry(id)
	if err != nil {
		h.respondError(w, err, "Failed to list country targets")
		return
	}
	countryWins, err := h.winsRepo.ByCountries(start, end, []string{country.Code})
	if err != nil {
		h.respondError(w, err, "Failed to query country wins")
		return
	}

	h.respondJSON(w, BuildCountry(country.Name, targets, countryWins))
}

// HandleListParentSectors handles GET /parent_sectors/
func (h *Handler) HandleListParentSectors(w http.ResponseWriter, r *http.Request) {
	sectors, err := h.hierRepo.ListParentSectors()
	if err != nil {
		h.respondError(w, err, "Failed to list parent sectors")
		return
	}
	if sectors == nil {
		sectors = []hierarchy.ParentSector{}
	}
	h.respondJSON(w, sectors)
}

// HandleAvgTimeToConfirm handles GET /avg_time_to_confirm/ - the global
// average across every confirmed win
func (h *Handler) HandleAvgTimeToConfirm(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.winsRepo.ConfirmedCustomerNotifications(wins.NotificationFilter{})
	if err != nil {
		h.respondError(w, err, "Failed to query notifications")
		return
	}

	h.respondJSON(w, map[string]float64{
		"average": AverageConfirmTime(notifications),
	})
}

// CountryWinsEntry pairs a country with its full-year breakdown
type CountryWinsEntry struct {
	ID   int64         `json:"id"`
	Code string        `json:"code"`
	Name string        `json:"name"`
	Wins WinsBreakdown `json:"wins"`
}

// HandleCountryWinsList handles GET /countries/wins/ - every country's
// breakdown in one response
func (h *Handler) HandleCountryWinsList(w http.ResponseWriter, r *http.Request) {
	_, start, end := h.year()

	countries, err := h.hierRepo.ListCountries()
	if err != nil {
		h.respondError(w, err, "Failed to list countries")
		return
	}
	allWins, err := h.winsRepo.InFinancialYear(start, end)
	if err != nil {
		h.respondError(w, err, "Failed to query wins")
		return
	}

	winsByCountry := make(map[string][]wins.Win)
	for _, win := range allWins {
		winsByCountry[win.Country] = append(winsByCountry[win.Country], win)
	}

	entries := make([]CountryWinsEntry, 0, len(countries))
	for _, country := range countries {
		entries = append(entries, CountryWinsEntry{
			ID:   country.ID,
			Code: country.Code,
			Name: country.Name,
			Wins: Breakdowns(winsByCountry[country.Code], true),
		})
	}

	h.respondJSON(w, entries)
}

// top non-HVC

// TopNonHVCEntry is one row of the top non-HVC wins report. Key casing
// follows the dashboard contract.
type TopNonHVCEntry struct {
	Region            string  `json:"region"`
	Sector            string  `json:"sector"`
	TotalValue        int64   `json:"totalValue"`
	TotalWins         int64   `json:"totalWins"`
	PercentComplete   float64 `json:"percentComplete"`
	AverageWinValue   int64   `json:"averageWinValue"`
	AverageWinPercent float64 `json:"averageWinPercent"`
}

// respondTopNonHVC resolves names and computes the relative percentages.
// Both percentages are against the largest aggregate, so the first row
// always reads 100.
func (h *Handler) respondTopNonHVC(w http.ResponseWriter, aggregates []wins.NonHVCAggregate) {
	entries := make([]TopNonHVCEntry, 0, len(aggregates))
	if len(aggregates) == 0 {
		h.respondJSON(w, entries)
		return
	}

	topValue := float64(aggregates[0].TotalValue)
	for _, agg := range aggregates {
		entry := TopNonHVCEntry{
			Region:     agg.Country,
			TotalValue: agg.TotalValue,
			TotalWins:  agg.TotalWins,
		}

		if country, err := h.hierRepo.CountryByCode(agg.Country); err == nil && country != nil {
			entry.Region = country.Name
		}
		if sector, err := h.hierRepo.GetSector(agg.Sector); err == nil && sector != nil {
			entry.Sector = sector.Name
		}

		if agg.TotalWins > 0 {
			entry.AverageWinValue = agg.TotalValue / agg.TotalWins
		}
		entry.PercentComplete = formulas.OrZero(formulas.Percentage(float64(agg.TotalValue), topValue))
		entry.AverageWinPercent = formulas.OrZero(formulas.Percentage(float64(entry.AverageWinValue), topValue))

		entries = append(entries, entry)
	}

	h.respondJSON(w, entries)
}
