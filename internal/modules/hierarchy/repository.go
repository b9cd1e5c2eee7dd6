package hierarchy

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Repository reads the organisational hierarchy: sector teams, HVC groups,
// overseas regions, countries, sectors and campaign targets. Lookups by id
// return (nil, nil) when the id does not resolve; callers turn that into
// the not-found error shape.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new hierarchy repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "hierarchy").Logger(),
	}
}

// GetSectorTeam returns the sector team with the given id
func (r *Repository) GetSectorTeam(id int64) (*SectorTeam, error) {
	var team SectorTeam
	err := r.db.QueryRow(`SELECT id, name FROM sector_teams WHERE id = ?`, id).
		Scan(&team.ID, &team.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sector team: %w", err)
	}
	return &team, nil
}

// ListSectorTeams returns all sector teams ordered by name
func (r *Repository) ListSectorTeams() ([]SectorTeam, error) {
	rows, err := r.db.Query(`SELECT id, name FROM sector_teams ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sector teams: %w", err)
	}
	defer rows.Close()

	var teams []SectorTeam
	for rows.Next() {
		var t SectorTeam
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("failed to scan sector team: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// GetHVCGroup returns the HVC group with the given id
func (r *Repository) GetHVCGroup(id int64) (*HVCGroup, error) {
	var group HVCGroup
	err := r.db.QueryRow(`SELECT id, name, sector_team_id FROM hvc_groups WHERE id = ?`, id).
		Scan(&group.ID, &group.Name, &group.SectorTeamID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get hvc group: %w", err)
	}
	return &group, nil
}

// ListHVCGroups returns all HVC groups ordered by name
func (r *Repository) ListHVCGroups() ([]HVCGroup, error) {
	return r.queryGroups(`SELECT id, name, sector_team_id FROM hvc_groups ORDER BY name`)
}

// HVCGroupsForTeam returns a sector team's HVC groups ordered by name
func (r *Repository) HVCGroupsForTeam(teamID int64) ([]HVCGroup, error) {
	return r.queryGroups(`SELECT id, name, sector_team_id FROM hvc_groups WHERE sector_team_id = ? ORDER BY name`, teamID)
}

func (r *Repository) queryGroups(query string, args ...interface{}) ([]HVCGroup, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query hvc groups: %w", err)
	}
	defer rows.Close()

	var groups []HVCGroup
	for rows.Next() {
		var g HVCGroup
		if err := rows.Scan(&g.ID, &g.Name, &g.SectorTeamID); err != nil {
			return nil, fmt.Errorf("failed to scan hvc group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// GetRegion returns the overseas region with the given id
func (r *Repository) GetRegion(id int64) (*OverseasRegion, error) {
	var region OverseasRegion
	err := r.db.QueryRow(`SELECT id, name FROM overseas_regions WHERE id = ?`, id).
		Scan(&region.ID, &region.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get overseas region: %w", err)
	}
	return &region, nil
}

// ListRegions returns all overseas regions ordered by name
func (r *Repository) ListRegions() ([]OverseasRegion, error) {
	rows, err := r.db.Query(`SELECT id, name FROM overseas_regions ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query overseas regions: %w", err)
	}
	defer rows.Close()

	var regions []OverseasRegion
	for rows.Next() {
		var reg OverseasRegion
		if err := rows.Scan(&reg.ID, &reg.Name); err != nil {
			return nil, fmt.Errorf("failed to scan overseas region: %w", err)
		}
		regions = append(regions, reg)
	}
	return regions, rows.Err()
}

// GetCountry returns the country with the given id
func (r *Repository) GetCountry(id int64) (*Country, error) {
	var c Country
	err := r.db.QueryRow(`SELECT id, code, name, overseas_region_id FROM countries WHERE id = ?`, id).
		Scan(&c.ID, &c.Code, &c.Name, &c.OverseasRegionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get country: %w", err)
	}
	return &c, nil
}

// CountryByCode returns the country with the given ISO code, or nil
func (r *Repository) CountryByCode(code string) (*Country, error) {
	var c Country
	err := r.db.QueryRow(`SELECT id, code, name, overseas_region_id FROM countries WHERE code = ?`, code).
		Scan(&c.ID, &c.Code, &c.Name, &c.OverseasRegionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get country by code: %w", err)
	}
	return &c, nil
}

// ListCountries returns all countries ordered by name
func (r *Repository) ListCountries() ([]Country, error) {
	rows, err := r.db.Query(`SELECT id, code, name, overseas_region_id FROM countries ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query countries: %w", err)
	}
	defer rows.Close()

	var countries []Country
	for rows.Next() {
		var c Country
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.OverseasRegionID); err != nil {
			return nil, fmt.Errorf("failed to scan country: %w", err)
		}
		countries = append(countries, c)
	}
	return countries, rows.Err()
}

// CountryCodesForRegion returns the codes of all countries within a region
func (r *Repository) CountryCodesForRegion(regionID int64) ([]string, error) {
	rows, err := r.db.Query(`SELECT code FROM countries WHERE overseas_region_id = ? ORDER BY code`, regionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query region countries: %w", err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("failed to scan country code: %w", err)
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

// ListParentSectors returns all parent sectors ordered by name
func (r *Repository) ListParentSectors() ([]ParentSector, error) {
	rows, err := r.db.Query(`SELECT id, name, sector_team_id FROM parent_sectors ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query parent sectors: %w", err)
	}
	defer rows.Close()

	var sectors []ParentSector
	for rows.Next() {
		var ps ParentSector
		if err := rows.Scan(&ps.ID, &ps.Name, &ps.SectorTeamID); err != nil {
			return nil, fmt.Errorf("failed to scan parent sector: %w", err)
		}
		sectors = append(sectors, ps)
	}
	return sectors, rows.Err()
}

// SectorIDsForTeam returns the CDMS sector ids owned by a sector team
func (r *Repository) SectorIDsForTeam(teamID int64) ([]int64, error) {
	rows, err := r.db.Query(`SELECT id FROM sectors WHERE sector_team_id = ? ORDER BY id`, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to query team sectors: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan sector id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetSector returns the CDMS sector with the given id
func (r *Repository) GetSector(id int64) (*Sector, error) {
	var s Sector
	err := r.db.QueryRow(`SELECT id, name, sector_team_id, COALESCE(parent_sector_id, 0) FROM sectors WHERE id = ?`, id).
		Scan(&s.ID, &s.Name, &s.SectorTeamID, &s.ParentSectorID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sector: %w", err)
	}
	return &s, nil
}

// targetSelect resolves the campaign name from the hvcs table
const targetSelect = `
	SELECT t.campaign_id, h.name, t.target, t.sector_team_id, t.hvc_group_id, t.country_id
	FROM targets t
	JOIN hvcs h ON h.campaign_id = t.campaign_id`

// TargetsForTeam returns all campaign targets owned by a sector team
func (r *Repository) TargetsForTeam(teamID int64) ([]Target, error) {
	return r.queryTargets(targetSelect+` WHERE t.sector_team_id = ? ORDER BY t.campaign_id`, teamID)
}

// TargetsForGroup returns all campaign targets owned by an HVC group
func (r *Repository) TargetsForGroup(groupID int64) ([]Target, error) {
	return r.queryTargets(targetSelect+` WHERE t.hvc_group_id = ? ORDER BY t.campaign_id`, groupID)
}

// TargetsForRegion returns targets of campaigns in countries of the region
func (r *Repository) TargetsForRegion(regionID int64) ([]Target, error) {
	return r.queryTargets(targetSelect+`
		JOIN countries c ON c.id = t.country_id
		WHERE c.overseas_region_id = ? ORDER BY t.campaign_id`, regionID)
}

// TargetsForCountry returns all campaign targets for one country
func (r *Repository) TargetsForCountry(countryID int64) ([]Target, error) {
	return r.queryTargets(targetSelect+` WHERE t.country_id = ? ORDER BY t.campaign_id`, countryID)
}

// TargetByCampaign returns the target for a campaign code, or nil
func (r *Repository) TargetByCampaign(campaignID string) (*Target, error) {
	targets, err := r.queryTargets(targetSelect+` WHERE t.campaign_id = ?`, campaignID)
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return nil, nil
	}
	return &targets[0], nil
}

func (r *Repository) queryTargets(query string, args ...interface{}) ([]Target, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query targets: %w", err)
	}
	defer rows.Close()

	var targets []Target
	for rows.Next() {
		var t Target
		if err := rows.Scan(&t.CampaignID, &t.Name, &t.Target, &t.SectorTeamID, &t.HVCGroupID, &t.CountryID); err != nil {
			return nil, fmt.Errorf("failed to scan target: %w", err)
		}
		targets = append(targets, t)
	}
	return targets, rows.Err()
}
