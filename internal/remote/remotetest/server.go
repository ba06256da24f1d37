// Package remotetest provides an in-memory stand-in for the fitness API.
// Reconciler and integration tests point a real remote.Client at it to
// exercise pulls, pushes and failure isolation without a backend.
package remotetest

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/healthfitlab/fitsync/internal/entity"
	"github.com/healthfitlab/fitsync/internal/remote"
)

const tokenIssuer = "fitsync-test"

// Received accumulates the push payloads the server accepted.
type Received struct {
	Meals        []entity.Meal
	Workouts     []entity.CompletedWorkout
	WaterLogs    []entity.WaterLog
	SleepLogs    []entity.SleepLog
	Measurements []entity.BodyMeasurement
	Preferences  []entity.Preferences
	Profiles     []entity.UserProfile
	Enrollments  []entity.ProgramEnrollment
	CustomFoods  []entity.Food
	ChatBatches  [][]entity.ChatMessage
}

// Server is a configurable double of the remote fitness API.
type Server struct {
	mu            sync.Mutex
	signingSecret []byte

	workouts     []remote.WorkoutPayload
	foods        []entity.Food
	recipes      []remote.RecipePayload
	programs     []remote.ProgramPayload
	definitions  []entity.AchievementDefinition
	profile      remote.ProfilePayload
	hasProfile   bool
	history      []entity.CompletedWorkout
	measurements []entity.BodyMeasurement
	waterLogs    []entity.WaterLog
	sleepLogs    []entity.SleepLog
	notices      []entity.Notification

	failing      map[string]bool
	chatAccepted *int

	received Received
}

// NewServer constructs a double whose bearer tokens are HS256-signed with
// the given secret.
func NewServer(signingSecret string) *Server {
	return &Server{
		signingSecret: []byte(signingSecret),
		failing:       map[string]bool{},
	}
}

// IssueToken mints a bearer token the server will accept.
func (s *Server) IssueToken(userID string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingSecret)
}

// SetCatalog installs the catalog fixtures served by the pull routes.
func (s *Server) SetCatalog(workouts []remote.WorkoutPayload, foods []entity.Food, recipes []remote.RecipePayload, programs []remote.ProgramPayload, definitions []entity.AchievementDefinition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workouts = workouts
	s.foods = foods
	s.recipes = recipes
	s.programs = programs
	s.definitions = definitions
}

// SetProfile installs the authoritative profile fixture.
func (s *Server) SetProfile(profile remote.ProfilePayload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = profile
	s.hasProfile = true
}

// SetUserData installs the user-history fixtures.
func (s *Server) SetUserData(history []entity.CompletedWorkout, measurements []entity.BodyMeasurement, waterLogs []entity.WaterLog, sleepLogs []entity.SleepLog, notices []entity.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = history
	s.measurements = measurements
	s.waterLogs = waterLogs
	s.sleepLogs = sleepLogs
	s.notices = notices
}

// FailRoute makes the given route path answer 500 until cleared.
func (s *Server) FailRoute(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing[path] = true
}

// ClearFailures restores all failing routes.
func (s *Server) ClearFailures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing = map[string]bool{}
}

// SetChatAccepted overrides the accepted count reported by the chat sync
// route; without an override the route echoes the batch size.
func (s *Server) SetChatAccepted(count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chatAccepted = &count
}

// ReceivedRecords returns a copy of everything pushed so far.
func (s *Server) ReceivedRecords() Received {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.received
}

// Handler builds the gin router for the double.
func (s *Server) Handler() http.Handler {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))
	router.Use(s.authorize)
	router.Use(s.injectFailures)

	router.GET("/workouts", func(c *gin.Context) { s.replyList(c, func() any { return s.workouts }) })
	router.GET("/foods", func(c *gin.Context) { s.replyList(c, func() any { return s.foods }) })
	router.GET("/recipes", func(c *gin.Context) { s.replyList(c, func() any { return s.recipes }) })
	router.GET("/programs", func(c *gin.Context) { s.replyList(c, func() any { return s.programs }) })
	router.GET("/achievements/definitions", func(c *gin.Context) { s.replyList(c, func() any { return s.definitions }) })
	router.GET("/achievements", func(c *gin.Context) { s.replyList(c, func() any { return s.profile.Achievements }) })
	router.GET("/workouts/history", func(c *gin.Context) { s.replyList(c, func() any { return s.history }) })
	router.GET("/measurements", func(c *gin.Context) { s.replyList(c, func() any { return s.measurements }) })
	router.GET("/water/logs", func(c *gin.Context) { s.replyList(c, func() any { return s.waterLogs }) })
	router.GET("/sleep/logs", func(c *gin.Context) { s.replyList(c, func() any { return s.sleepLogs }) })
	router.GET("/notifications", func(c *gin.Context) { s.replyList(c, func() any { return s.notices }) })

	router.GET("/user/profile", func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if !s.hasProfile {
			c.JSON(http.StatusNotFound, gin.H{"error": "no_profile"})
			return
		}
		c.JSON(http.StatusOK, s.profile)
	})

	router.POST("/meals", func(c *gin.Context) {
		acceptPush(c, s, func(meal entity.Meal) { s.received.Meals = append(s.received.Meals, meal) })
	})
	router.POST("/workouts/complete", func(c *gin.Context) {
		acceptPush(c, s, func(workout entity.CompletedWorkout) { s.received.Workouts = append(s.received.Workouts, workout) })
	})
	router.POST("/water", func(c *gin.Context) {
		acceptPush(c, s, func(log entity.WaterLog) { s.received.WaterLogs = append(s.received.WaterLogs, log) })
	})
	router.POST("/sleep", func(c *gin.Context) {
		acceptPush(c, s, func(log entity.SleepLog) { s.received.SleepLogs = append(s.received.SleepLogs, log) })
	})
	router.POST("/measurements", func(c *gin.Context) {
		acceptPush(c, s, func(measurement entity.BodyMeasurement) { s.received.Measurements = append(s.received.Measurements, measurement) })
	})
	router.PUT("/user/preferences", func(c *gin.Context) {
		acceptPush(c, s, func(prefs entity.Preferences) { s.received.Preferences = append(s.received.Preferences, prefs) })
	})
	router.POST("/user/sync", func(c *gin.Context) {
		acceptPush(c, s, func(profile entity.UserProfile) { s.received.Profiles = append(s.received.Profiles, profile) })
	})
	router.POST("/programs/enroll", func(c *gin.Context) {
		acceptPush(c, s, func(enrollment entity.ProgramEnrollment) { s.received.Enrollments = append(s.received.Enrollments, enrollment) })
	})

	router.POST("/foods/custom", s.handleCreateCustomFood)
	router.POST("/chat/sync", s.handleChatSync)

	return router
}

func (s *Server) replyList(c *gin.Context, fixture func() any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value := fixture()
	c.JSON(http.StatusOK, value)
}

func acceptPush[T any](c *gin.Context, s *Server, record func(T)) {
	var payload T
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	s.mu.Lock()
	record(payload)
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// The real service assigns the id and serves the food from the catalog
// afterwards; the double mirrors both halves.
func (s *Server) handleCreateCustomFood(c *gin.Context) {
	var food entity.Food
	if err := c.ShouldBindJSON(&food); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	s.mu.Lock()
	if food.ID == "" {
		food.ID = fmt.Sprintf("custom-food-%d", len(s.received.CustomFoods)+1)
	}
	s.received.CustomFoods = append(s.received.CustomFoods, food)
	s.foods = append(s.foods, food)
	s.mu.Unlock()
	c.JSON(http.StatusOK, food)
}

type chatSyncRequest struct {
	Messages []entity.ChatMessage `json:"messages"`
}

func (s *Server) handleChatSync(c *gin.Context) {
	var request chatSyncRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	s.mu.Lock()
	s.received.ChatBatches = append(s.received.ChatBatches, request.Messages)
	accepted := len(request.Messages)
	if s.chatAccepted != nil {
		accepted = *s.chatAccepted
	}
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"count": accepted})
}

func (s *Server) authorize(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.signingSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(tokenIssuer))
	if err != nil || !parsed.Valid || claims.Subject == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.Next()
}

func (s *Server) injectFailures(c *gin.Context) {
	s.mu.Lock()
	failing := s.failing[c.FullPath()]
	s.mu.Unlock()
	if failing {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "injected_failure"})
		return
	}
	c.Next()
}
