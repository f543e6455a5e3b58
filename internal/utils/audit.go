package utils

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"voltkart_back_end/internal/database"
	"voltkart_back_end/internal/models"
)

// Actions d'audit prédéfinies
const (
	ActionProductCreate = "product.create"
	ActionImageUpload   = "product.image_upload"
	ActionAdminLogin    = "admin.login_success"
	ActionAdminLoginKO  = "admin.login_failed"
)

// Resources d'audit
const (
	ResourceProduct = "product"
	ResourceAuth    = "auth"
)

// LogAction enregistre une action admin dans les logs d'audit
func LogAction(c *gin.Context, action, resource, resourceID string, newValue interface{}) {
	go func() {
		if err := logActionAsync(c, action, resource, resourceID, newValue, true, ""); err != nil {
			log.Printf("❌ Erreur enregistrement log audit: %v", err)
		}
	}()
}

// LogFailedAction enregistre une action échouée dans les logs d'audit
func LogFailedAction(c *gin.Context, action, resource, resourceID, errorMsg string) {
	go func() {
		if err := logActionAsync(c, action, resource, resourceID, nil, false, errorMsg); err != nil {
			log.Printf("❌ Erreur enregistrement log audit: %v", err)
		}
	}()
}

// logActionAsync enregistre de façon asynchrone
func logActionAsync(c *gin.Context, action, resource, resourceID string, newValue interface{}, success bool, errorMsg string) error {
	session, err := database.GetAuditSession()
	if err != nil {
		// Audit optionnel : pas de keyspace configuré, on ignore
		return nil
	}

	var newValueStr string
	if newValue != nil {
		if newBytes, err := json.Marshal(newValue); err == nil {
			newValueStr = string(newBytes)
		}
	}

	auditLog := models.AuditLog{
		ID:         gocql.TimeUUID(),
		UserID:     c.GetString("user_id"),
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		NewValue:   newValueStr,
		Success:    success,
		ErrorMsg:   errorMsg,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.GetHeader("User-Agent"),
		CreatedAt:  time.Now(),
	}

	query := `
		INSERT INTO audit_logs (
			id, user_id, action, resource, resource_id,
			new_value, success, error_msg, ip_address, user_agent, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	return session.Query(query,
		auditLog.ID, auditLog.UserID, auditLog.Action, auditLog.Resource, auditLog.ResourceID,
		auditLog.NewValue, auditLog.Success, auditLog.ErrorMsg,
		auditLog.IPAddress, auditLog.UserAgent, auditLog.CreatedAt,
	).Exec()
}
