package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"clan-hub-system/middleware"
	"clan-hub-system/models"
	"clan-hub-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

// discordEndpoint is the OAuth2 endpoint pair for Discord.
var discordEndpoint = oauth2.Endpoint{
	AuthURL:  "https://discord.com/oauth2/authorize",
	TokenURL: "https://discord.com/api/oauth2/token",
}

const discordMeURL = "https://discord.com/api/users/@me"

type AuthService struct {
	DB          *gorm.DB
	Sessions    *session.Store
	OAuth       *oauth2.Config
	stateSecret []byte
}

func NewAuthService(db *gorm.DB, sessions *session.Store) *AuthService {
	clientID := os.Getenv("DISCORD_CLIENT_ID")
	clientSecret := os.Getenv("DISCORD_CLIENT_SECRET")
	callbackURL := os.Getenv("DISCORD_CALLBACK_URL")
	if callbackURL == "" {
		callbackURL = "http://localhost:5200/api/auth/discord/callback"
	}

	if clientID == "" || clientSecret == "" {
		log.Println("⚠️  DISCORD_CLIENT_ID or DISCORD_CLIENT_SECRET not set, Discord login disabled")
	}

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "default_secret"
	}

	return &AuthService{
		DB:       db,
		Sessions: sessions,
		OAuth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  callbackURL,
			Scopes:       []string{"identify"},
			Endpoint:     discordEndpoint,
		},
		stateSecret: []byte(secret),
	}
}

// DiscordLogin redirects the browser to Discord's authorize page with a
// short-lived signed state token.
func (s *AuthService) DiscordLogin(c *fiber.Ctx) error {
	if s.OAuth.ClientID == "" {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Discord auth not configured, set DISCORD_CLIENT_ID and DISCORD_CLIENT_SECRET",
		})
	}

	state, err := s.signState()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to create login state"})
	}
	return c.Redirect(s.OAuth.AuthCodeURL(state), fiber.StatusFound)
}

// DiscordCallback completes the OAuth handshake: verifies state, exchanges
// the code, fetches the Discord profile and upserts the local user. A new
// user starts as guest; returning users only get their avatar refreshed.
func (s *AuthService) DiscordCallback(c *fiber.Ctx) error {
	if err := s.verifyState(c.Query("state")); err != nil {
		log.Printf("[AUTH] rejected callback state: %v", err)
		return c.Redirect("/", fiber.StatusFound)
	}

	code := c.Query("code")
	if code == "" {
		return c.Redirect("/", fiber.StatusFound)
	}

	token, err := s.OAuth.Exchange(c.Context(), code)
	if err != nil {
		log.Printf("[AUTH] code exchange failed: %v", err)
		return c.Redirect("/", fiber.StatusFound)
	}

	profile, err := s.fetchDiscordProfile(token)
	if err != nil {
		log.Printf("[AUTH] profile fetch failed: %v", err)
		return c.Redirect("/", fiber.StatusFound)
	}

	user, err := s.upsertUser(profile)
	if err != nil {
		log.Printf("[AUTH] user upsert failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "login failed"})
	}

	if err := s.LoginSession(c, user.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "session write failed"})
	}

	log.Printf("✅ [AUTH] %s logged in (role=%s)", user.Username, user.Role)
	return c.Redirect("/", fiber.StatusFound)
}

// Me returns the authenticated user, or 401 with a null body.
func (s *AuthService) Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(nil)
	}
	return c.JSON(user)
}

// Logout destroys the cookie session.
func (s *AuthService) Logout(c *fiber.Ctx) error {
	sess, err := s.Sessions.Get(c)
	if err == nil {
		if err := sess.Destroy(); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Logout failed"})
		}
	}
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// LoginSession stores the user id in the request's cookie session.
func (s *AuthService) LoginSession(c *fiber.Ctx, userID uint) error {
	sess, err := s.Sessions.Get(c)
	if err != nil {
		return err
	}
	sess.Set(middleware.SessionUserKey, userID)
	return sess.Save()
}

type discordProfile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

func (p discordProfile) avatarURL() string {
	if p.Avatar == "" {
		return ""
	}
	return fmt.Sprintf("https://cdn.discordapp.com/avatars/%s/%s.png", p.ID, p.Avatar)
}

func (s *AuthService) fetchDiscordProfile(token *oauth2.Token) (*discordProfile, error) {
	req, err := http.NewRequest(http.MethodGet, discordMeURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)

	resp, err := utils.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("discord /users/@me returned %d: %s", resp.StatusCode, string(body))
	}

	var profile discordProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *AuthService) upsertUser(profile *discordProfile) (*models.User, error) {
	username := utils.NormalizeUsername(profile.Username)
	avatar := profile.avatarURL()

	var user models.User
	err := s.DB.Where("discord_id = ?", profile.ID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			Username:  username,
			DiscordID: profile.ID,
			Avatar:    avatar,
			Role:      models.RoleGuest,
		}
		if err := s.DB.Create(&user).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}
	if err != nil {
		return nil, err
	}

	if user.Avatar != avatar || user.Username != username {
		user.Avatar = avatar
		user.Username = username
		if err := s.DB.Save(&user).Error; err != nil {
			return nil, err
		}
	}
	return &user, nil
}

type stateClaims struct {
	jwt.RegisteredClaims
}

func (s *AuthService) signState() (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, stateClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(10 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "clan-hub-system",
		},
	})
	return tok.SignedString(s.stateSecret)
}

func (s *AuthService) verifyState(state string) error {
	if state == "" {
		return errors.New("missing state")
	}
	tok, err := jwt.ParseWithClaims(state, &stateClaims{}, func(t *jwt.Token) (any, error) {
		return s.stateSecret, nil
	})
	if err != nil {
		return err
	}
	if !tok.Valid {
		return errors.New("invalid state token")
	}
	return nil
}
