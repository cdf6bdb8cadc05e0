package http

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"campus-connect/internal/auth"
	"campus-connect/internal/domain"
	"campus-connect/internal/service"
	"campus-connect/internal/storage"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users         service.UserService
	items         service.ItemService
	notifications service.NotificationService
	tokens        *auth.TokenService
	storage       storage.Service
	logger        *logrus.Logger
}

func NewHandler(
	users service.UserService,
	items service.ItemService,
	notifications service.NotificationService,
	tokens *auth.TokenService,
	store storage.Service,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		users:         users,
		items:         items,
		notifications: notifications,
		tokens:        tokens,
		storage:       store,
		logger:        logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	router.POST("/users/register", h.register)
	router.POST("/users/login", h.login)
	router.GET("/uploads/:name", h.serveUpload)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authed := router.Group("/", AuthRequired(h.tokens))
	{
		authed.POST("/upload", h.upload)
		authed.GET("/users/:email", h.getUser)
		authed.PATCH("/users/:email/profile-picture", h.updateProfilePicture)
		authed.DELETE("/users/:email", h.deleteUser)
		authed.POST("/lost-items", h.createItem)
		authed.GET("/lost-items", h.listItems)
		authed.PATCH("/lost-items/:id", h.updateItem)
		authed.DELETE("/lost-items/:id", h.deleteItem)
		authed.POST("/notifications", h.createNotification)
		authed.GET("/notifications/:userEmail", h.listNotifications)
	}
}

type registerRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	University  string `json:"university"`
	Department  string `json:"department"`
	BloodGroup  string `json:"bloodGroup"`
	PhoneNumber string `json:"phoneNumber"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profilePictureRequest struct {
	ProfilePicture string `json:"profilePicture"`
}

type createItemRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Location    string `json:"location"`
	UserEmail   string `json:"userEmail"`
	ImagePath   string `json:"imagePath"`
}

// updateItemRequest is the allow-list of PATCHable item fields; anything
// else in the body is dropped on decode.
type updateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	ImagePath   *string `json:"imagePath"`
	Found       *bool   `json:"found"`
}

type createNotificationRequest struct {
	UserEmail   string     `json:"userEmail"`
	Message     string     `json:"message"`
	FinderEmail string     `json:"finderEmail"`
	Timestamp   *time.Time `json:"timestamp"`
}

type UserResponse struct {
	Email          string `json:"email"`
	Username       string `json:"username"`
	University     string `json:"university"`
	Department     string `json:"department"`
	BloodGroup     string `json:"bloodGroup"`
	PhoneNumber    string `json:"phoneNumber"`
	ProfilePicture string `json:"profilePicture,omitempty"`
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt"`
}

type ItemResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Location    string `json:"location"`
	UserEmail   string `json:"userEmail"`
	ImagePath   string `json:"imagePath"`
	Found       bool   `json:"found"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

type NotificationResponse struct {
	ID          string `json:"id"`
	UserEmail   string `json:"userEmail"`
	Message     string `json:"message"`
	Timestamp   string `json:"timestamp"`
	FinderEmail string `json:"finderEmail"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.serverError(c, err, "failed to register user")
		return
	}

	user, err := h.users.Register(c.Request.Context(), service.RegisterInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		University:  req.University,
		Department:  req.Department,
		BloodGroup:  req.BloodGroup,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		h.serverError(c, err, "failed to register user")
		return
	}

	c.JSON(http.StatusCreated, userToResponse(user))
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.serverError(c, err, "failed to login")
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		h.serverError(c, err, "failed to login")
		return
	}

	token, err := h.tokens.Issue(user.Email)
	if err != nil {
		h.serverError(c, err, "failed to login")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *Handler) getUser(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), c.Param("email"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		h.serverError(c, err, "failed to fetch user")
		return
	}

	c.JSON(http.StatusOK, userToResponse(user))
}

func (h *Handler) updateProfilePicture(c *gin.Context) {
	var req profilePictureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.serverError(c, err, "failed to update profile picture")
		return
	}

	user, err := h.users.UpdateProfilePicture(c.Request.Context(), c.Param("email"), req.ProfilePicture)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		h.serverError(c, err, "failed to update profile picture")
		return
	}

	c.JSON(http.StatusOK, userToResponse(user))
}

func (h *Handler) deleteUser(c *gin.Context) {
	err := h.users.Delete(c.Request.Context(), subjectEmail(c), c.Param("email"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "unauthorized"})
		default:
			h.serverError(c, err, "failed to delete account")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account and associated data deleted"})
}

func (h *Handler) createItem(c *gin.Context) {
	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.serverError(c, err, "failed to add lost item")
		return
	}

	item, err := h.items.Create(c.Request.Context(), service.ItemInput{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		OwnerEmail:  req.UserEmail,
		ImagePath:   req.ImagePath,
	})
	if err != nil {
		h.serverError(c, err, "failed to add lost item")
		return
	}

	c.JSON(http.StatusCreated, itemToResponse(item))
}

func (h *Handler) listItems(c *gin.Context) {
	items, err := h.items.List(c.Request.Context())
	if err != nil {
		h.serverError(c, err, "failed to fetch lost items")
		return
	}

	resp := make([]ItemResponse, len(items))
	for i := range items {
		resp[i] = itemToResponse(&items[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) updateItem(c *gin.Context) {
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.serverError(c, err, "failed to update lost item")
		return
	}

	item, err := h.items.Update(c.Request.Context(), c.Param("id"), service.ItemUpdate{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		ImagePath:   req.ImagePath,
		Found:       req.Found,
	})
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}
		h.serverError(c, err, "failed to update lost item")
		return
	}

	c.JSON(http.StatusOK, itemToResponse(item))
}

func (h *Handler) deleteItem(c *gin.Context) {
	err := h.items.Delete(c.Request.Context(), subjectEmail(c), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "unauthorized"})
		default:
			h.serverError(c, err, "failed to delete lost item")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}

func (h *Handler) createNotification(c *gin.Context) {
	var req createNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.serverError(c, err, "failed to add notification")
		return
	}

	notification, err := h.notifications.Create(c.Request.Context(), service.NotificationInput{
		RecipientEmail: req.UserEmail,
		Message:        req.Message,
		FinderEmail:    req.FinderEmail,
		Timestamp:      req.Timestamp,
	})
	if err != nil {
		h.serverError(c, err, "failed to add notification")
		return
	}

	c.JSON(http.StatusCreated, notificationToResponse(notification))
}

func (h *Handler) listNotifications(c *gin.Context) {
	notifications, err := h.notifications.ListForRecipient(c.Request.Context(), c.Param("userEmail"))
	if err != nil {
		h.serverError(c, err, "failed to fetch notifications")
		return
	}

	resp := make([]NotificationResponse, len(notifications))
	for i := range notifications {
		resp[i] = notificationToResponse(&notifications[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) upload(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		h.serverError(c, err, "failed to upload file")
		return
	}

	src, err := file.Open()
	if err != nil {
		h.serverError(c, err, "failed to upload file")
		return
	}
	defer src.Close()

	// multer-style naming: millisecond timestamp plus the original extension
	filename := fmt.Sprintf("%d%s", time.Now().UnixMilli(), filepath.Ext(file.Filename))
	path, err := h.storage.Save(c.Request.Context(), filename, file.Header.Get("Content-Type"), src)
	if err != nil {
		h.serverError(c, err, "failed to upload file")
		return
	}

	c.JSON(http.StatusOK, gin.H{"path": path})
}

func (h *Handler) serveUpload(c *gin.Context) {
	name := c.Param("name")

	rc, err := h.storage.Open(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
			return
		}
		h.serverError(c, err, "failed to fetch file")
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		h.logger.Warnf("stream upload %s: %v", name, err)
	}
}

// serverError logs the cause and answers with a generic message; internals
// never reach the caller.
func (h *Handler) serverError(c *gin.Context, err error, message string) {
	h.logger.WithError(err).Errorf("%s %s: %s", c.Request.Method, c.FullPath(), message)
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		Email:          user.Email,
		Username:       user.Username,
		University:     user.University,
		Department:     user.Department,
		BloodGroup:     user.BloodGroup,
		PhoneNumber:    user.PhoneNumber,
		ProfilePicture: user.ProfilePicture,
		CreatedAt:      user.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      user.UpdatedAt.Format(time.RFC3339),
	}
}

func itemToResponse(item *domain.LostItem) ItemResponse {
	return ItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Location:    item.Location,
		UserEmail:   item.OwnerEmail,
		ImagePath:   item.ImagePath,
		Found:       item.Found,
		CreatedAt:   item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   item.UpdatedAt.Format(time.RFC3339),
	}
}

func notificationToResponse(notification *domain.Notification) NotificationResponse {
	return NotificationResponse{
		ID:          notification.ID,
		UserEmail:   notification.RecipientEmail,
		Message:     notification.Message,
		Timestamp:   notification.Timestamp.Format(time.RFC3339),
		FinderEmail: notification.FinderEmail,
	}
}
