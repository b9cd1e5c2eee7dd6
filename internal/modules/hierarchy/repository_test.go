package hierarchy

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uktrade/export-wins-mi/internal/database"
)

func setupRepo(t *testing.T) *Repository {
	db, err := database.New(filepath.Join(t.TempDir(), "mi.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { db.Close() })

	stmts := []string{
		`INSERT INTO sector_teams (id, name) VALUES (1, 'Technology'), (2, 'Agritech')`,
		`INSERT INTO hvc_groups (id, name, sector_team_id) VALUES (1, 'Digital Economy', 1), (2, 'Agritech', 2)`,
		`INSERT INTO parent_sectors (id, name, sector_team_id) VALUES (1, 'ICT', 1)`,
		`INSERT INTO sectors (id, name, sector_team_id, parent_sector_id) VALUES
			(10, 'Software', 1, 1), (11, 'Hardware', 1, 1), (20, 'Farming', 2, NULL)`,
		`INSERT INTO overseas_regions (id, name) VALUES (1, 'Western Europe'), (2, 'North America')`,
		`INSERT INTO countries (id, code, name, overseas_region_id) VALUES
			(1, 'FR', 'France', 1), (2, 'DE', 'Germany', 1), (3, 'US', 'United States', 2)`,
		`INSERT INTO hvcs (campaign_id, name) VALUES
			('E001', 'Digital Economy: E001'), ('E002', 'Agritech France: E002')`,
		`INSERT INTO targets (campaign_id, target, sector_team_id, hvc_group_id, country_id) VALUES
			('E001', 10000000, 1, 1, 3), ('E002', 5000000, 2, 2, 1)`,
	}
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	return NewRepository(db.Conn(), zerolog.Nop())
}

func TestGetSectorTeamMissing(t *testing.T) {
	repo := setupRepo(t)

	team, err := repo.GetSectorTeam(99)
	require.NoError(t, err)
	assert.Nil(t, team)
}

func TestListSectorTeamsOrdered(t *testing.T) {
	repo := setupRepo(t)

	teams, err := repo.ListSectorTeams()
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, "Agritech", teams[0].Name)
	assert.Equal(t, "Technology", teams[1].Name)
}

func TestHVCGroupsForTeam(t *testing.T) {
	repo := setupRepo(t)

	groups, err := repo.HVCGroupsForTeam(1)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "Digital Economy", groups[0].Name)
}

func TestSectorIDsForTeam(t *testing.T) {
	repo := setupRepo(t)

	ids, err := repo.SectorIDsForTeam(1)
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 11}, ids)
}

func TestCountryCodesForRegion(t *testing.T) {
	repo := setupRepo(t)

	codes, err := repo.CountryCodesForRegion(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"DE", "FR"}, codes)
}

func TestCountryByCode(t *testing.T) {
	repo := setupRepo(t)

	country, err := repo.CountryByCode("US")
	require.NoError(t, err)
	require.NotNil(t, country)
	assert.Equal(t, "United States", country.Name)

	country, err = repo.CountryByCode("XX")
	require.NoError(t, err)
	assert.Nil(t, country)
}

func TestTargetsForTeamResolvesNames(t *testing.T) {
	repo := setupRepo(t)

	targets, err := repo.TargetsForTeam(1)
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, "E001", targets[0].CampaignID)
	assert.Equal(t, "Digital Economy: E001", targets[0].Name)
	assert.Equal(t, "Digital Economy", targets[0].CampaignName())
	assert.Equal(t, int64(10000000), targets[0].Target)
}

func TestTargetsForRegion(t *testing.T) {
	repo := setupRepo(t)

	// E002 targets France, which sits in Western Europe
	targets, err := repo.TargetsForRegion(1)
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, "E002", targets[0].CampaignID)

	targets, err = repo.TargetsForRegion(2)
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, "E001", targets[0].CampaignID)
}

func TestTargetByCampaign(t *testing.T) {
	repo := setupRepo(t)

	target, err := repo.TargetByCampaign("E001")
	require.NoError(t, err)
	require.NotNil(t, target)
	assert.Equal(t, int64(10000000), target.Target)

	target, err = repo.TargetByCampaign("E999")
	require.NoError(t, err)
	assert.Nil(t, target)
}
