package testing

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tannermartz/breakline/models"
	"github.com/tannermartz/breakline/utils"
	"golang.org/x/crypto/bcrypt"
)

// TestPassword is the plaintext behind every fixture player's hash
const TestPassword = "SecurePass123!"

// TestFixtures provides helpers for seeding common test data
type TestFixtures struct {
	db *TestDB
}

// NewTestFixtures creates a fixture helper bound to a test database
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{db: db}
}

// CreateTestPlayer creates an active player with a known password
func (tf *TestFixtures) CreateTestPlayer(email string) (*models.Player, error) {
	// MinCost keeps the test suite fast
	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	player := &models.Player{
		UUID:         uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  "Test Player",
		IsActive:     utils.ToPtr(true),
		IsAdmin:      utils.ToPtr(false),
	}
	if err := tf.db.DB.Create(player).Error; err != nil {
		return nil, fmt.Errorf("failed to create test player: %w", err)
	}
	return player, nil
}

// CreateTestAdmin creates an active admin account
func (tf *TestFixtures) CreateTestAdmin(email string) (*models.Player, error) {
	admin, err := tf.CreateTestPlayer(email)
	if err != nil {
		return nil, err
	}
	admin.IsAdmin = utils.ToPtr(true)
	admin.DisplayName = "Test Admin"
	if err := tf.db.DB.Save(admin).Error; err != nil {
		return nil, fmt.Errorf("failed to promote test admin: %w", err)
	}
	return admin, nil
}

// CreateTestVenue creates a venue in the given city and state
func (tf *TestFixtures) CreateTestVenue(city, state string) (*models.Venue, error) {
	venue := &models.Venue{
		UUID:  uuid.New(),
		Name:  "Test Billiards Hall",
		City:  city,
		State: state,
	}
	if err := tf.db.DB.Create(venue).Error; err != nil {
		return nil, fmt.Errorf("failed to create test venue: %w", err)
	}
	return venue, nil
}

// CreateTestTournament creates a tournament listing with sensible defaults.
// Pass a nil venue for a listing without location data.
func (tf *TestFixtures) CreateTestTournament(createdBy uint, venue *models.Venue, status models.TournamentStatus) (*models.Tournament, error) {
	tournament := &models.Tournament{
		UUID:             uuid.New(),
		Name:             "Tuesday Night 9-Ball",
		GameType:         "9-ball",
		TournamentFormat: "double-elimination",
		TableSize:        "9ft",
		Equipment:        utils.ToPtr("Diamond tables"),
		EntryFee:         utils.ToPtr(20.0),
		ReportsToFargo:   utils.ToPtr(true),
		OpenTournament:   utils.ToPtr(true),
		TournamentDate:   utils.UTCNow().AddDate(0, 0, 14).Truncate(24 * time.Hour),
		Status:           status,
		CreatedBy:        createdBy,
	}
	if venue != nil {
		tournament.VenueID = &venue.ID
		tournament.Venue = venue
	}
	if err := tf.db.DB.Create(tournament).Error; err != nil {
		return nil, fmt.Errorf("failed to create test tournament: %w", err)
	}
	return tournament, nil
}

// CreateTestAlert creates an active search alert with the given criteria
func (tf *TestFixtures) CreateTestAlert(playerID uint, name string, criteria models.FilterCriteria) (*models.SearchAlert, error) {
	alert := &models.SearchAlert{
		UUID:     uuid.New(),
		PlayerID: playerID,
		Name:     name,
		Criteria: criteria,
		IsActive: utils.ToPtr(true),
	}
	if err := tf.db.DB.Create(alert).Error; err != nil {
		return nil, fmt.Errorf("failed to create test alert: %w", err)
	}
	return alert, nil
}

// CreateTestSession creates an active session for a player
func (tf *TestFixtures) CreateTestSession(playerID uint) (*models.PlayerSession, error) {
	accessToken, err := GenerateSecureToken(32)
	if err != nil {
		return nil, err
	}
	refreshToken, err := GenerateSecureToken(32)
	if err != nil {
		return nil, err
	}

	session := &models.PlayerSession{
		PlayerID:     playerID,
		SessionToken: accessToken,
		RefreshToken: &refreshToken,
		IsActive:     utils.ToPtr(true),
		ExpiresAt:    utils.UTCNow().Add(utils.AccessTokenTTL),
	}
	if err := tf.db.DB.Create(session).Error; err != nil {
		return nil, fmt.Errorf("failed to create test session: %w", err)
	}
	return session, nil
}

// GenerateSecureToken returns a random hex token
func GenerateSecureToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
