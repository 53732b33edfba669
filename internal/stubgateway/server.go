package stubgateway

import (
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"labelverse/contributor-portal/portal-console/internal/models"
)

// Server is an in-memory implementation of the gateway REST contract, used
// for local development and integration tests. It is deliberately not the
// real backend: no AI verification runs, no rewards are issued and no
// COMPLETED automation exists. It stores everything in process memory.
type Server struct {
	logger *zap.Logger

	mu            sync.Mutex
	datasets      []models.Dataset
	contributions []models.Contribution
	files         map[string][]byte
}

// NewServer creates an empty stub gateway.
func NewServer(logger *zap.Logger) *Server {
	return &Server{
		logger: logger,
		files:  make(map[string][]byte),
	}
}

// Router builds the gin engine serving the gateway contract.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	// CORS Middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.GET("/datasets", s.listDatasets)
	router.GET("/datasets/:id", s.getDataset)
	router.POST("/datasets", s.createDataset)
	router.PUT("/datasets/:id", s.updateDataset)

	router.GET("/contributions", s.listContributions)
	router.GET("/contributions/:id", s.getContribution)
	router.POST("/contributions", s.createContribution)
	router.PUT("/contributions/:id", s.updateContribution)

	router.GET("/files/:id", s.getFile)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now()})
	})

	return router
}

func (s *Server) listDatasets(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Dataset, len(s.datasets))
	copy(out, s.datasets)
	c.JSON(http.StatusOK, out)
}

func (s *Server) getDataset(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ds := s.findDataset(c.Param("id")); ds != nil {
		c.JSON(http.StatusOK, ds)
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "dataset not found"})
}

func (s *Server) createDataset(c *gin.Context) {
	var draft models.DatasetDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dataset payload"})
		return
	}
	if draft.Name == "" || !draft.DataType.Valid() || draft.SampleCountGoal <= 0 || draft.BaseRewardPerSample < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dataset payload"})
		return
	}

	dataset := models.Dataset{
		ID:                  uuid.NewString(),
		Name:                draft.Name,
		Description:         draft.Description,
		DataType:            draft.DataType,
		FormatRequirements:  draft.FormatRequirements,
		SampleCountGoal:     draft.SampleCountGoal,
		CurrentSampleCount:  0,
		BaseRewardPerSample: draft.BaseRewardPerSample,
		CreatedAt:           time.Now().UTC(),
		Status:              models.DatasetActive,
	}

	s.mu.Lock()
	s.datasets = append(s.datasets, dataset)
	s.mu.Unlock()

	s.logger.Info("dataset created", zap.String("dataset_id", dataset.ID), zap.String("name", dataset.Name))
	c.JSON(http.StatusCreated, dataset)
}

func (s *Server) updateDataset(c *gin.Context) {
	var payload models.Dataset
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dataset payload"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.datasets {
		if s.datasets[i].ID == c.Param("id") {
			payload.ID = s.datasets[i].ID
			payload.CreatedAt = s.datasets[i].CreatedAt
			s.datasets[i] = payload
			c.JSON(http.StatusOK, payload)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "dataset not found"})
}

func (s *Server) listContributions(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Contribution, len(s.contributions))
	copy(out, s.contributions)
	c.JSON(http.StatusOK, out)
}

func (s *Server) getContribution(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.contributions {
		if s.contributions[i].ID == c.Param("id") {
			c.JSON(http.StatusOK, s.contributions[i])
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "contribution not found"})
}

func (s *Server) createContribution(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	userID := c.PostForm("userId")
	datasetID := c.PostForm("datasetId")
	if userID == "" || datasetID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId and datasetId are required"})
		return
	}

	s.mu.Lock()
	dataset := s.findDataset(datasetID)
	s.mu.Unlock()
	if dataset == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dataset not found"})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	fileID := uuid.NewString()
	contribution := models.Contribution{
		ID:                uuid.NewString(),
		UserID:            userID,
		DatasetID:         datasetID,
		URL:               "/files/" + fileID,
		DataType:          dataset.DataType,
		UploadedAt:        time.Now().UTC(),
		VerificationScore: 0,
		Status:            models.VerificationPending,
		Description:       c.PostForm("description"),
	}

	s.mu.Lock()
	s.files[fileID] = content
	s.contributions = append(s.contributions, contribution)
	s.mu.Unlock()

	s.logger.Info("contribution created",
		zap.String("contribution_id", contribution.ID),
		zap.String("dataset_id", datasetID),
		zap.String("user_id", userID))
	c.JSON(http.StatusCreated, contribution)
}

// updateContribution applies a partial status update. Like the real backend,
// it does not reject redundant or unusual transitions; enforcing the
// transition table is the client's concern.
func (s *Server) updateContribution(c *gin.Context) {
	var payload struct {
		Status models.VerificationStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil || payload.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.contributions {
		if s.contributions[i].ID == c.Param("id") {
			s.contributions[i].Status = payload.Status
			c.JSON(http.StatusOK, s.contributions[i])
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "contribution not found"})
}

func (s *Server) getFile(c *gin.Context) {
	s.mu.Lock()
	content, ok := s.files[c.Param("id")]
	s.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	}
	c.Data(http.StatusOK, "application/octet-stream", content)
}

// findDataset must be called with the mutex held.
func (s *Server) findDataset(id string) *models.Dataset {
	for i := range s.datasets {
		if s.datasets[i].ID == id {
			return &s.datasets[i]
		}
	}
	return nil
}
