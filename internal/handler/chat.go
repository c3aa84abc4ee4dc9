package handler

import (
	"context"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Ismailk12/ASK-AI/internal/domain"
	"github.com/Ismailk12/ASK-AI/internal/service"
	"github.com/Ismailk12/ASK-AI/internal/store"
)

// Searcher is the best-effort web enrichment collaborator.
type Searcher interface {
	Search(ctx context.Context, query string) string
}

// Generator produces the reply; it embeds its own failures in the text.
type Generator interface {
	Generate(ctx context.Context, prompt string) domain.Reply
}

type ChatHandler struct {
	store     store.ChatStore
	search    Searcher
	generate  Generator
	maxPairs  int
	indexFile string
}

func NewChatHandler(chatStore store.ChatStore, search Searcher, generate Generator, maxPairs int) *ChatHandler {
	return &ChatHandler{
		store:     chatStore,
		search:    search,
		generate:  generate,
		maxPairs:  maxPairs,
		indexFile: "static/index.html",
	}
}

func (h *ChatHandler) Register(r *gin.Engine) {
	r.GET("/", h.Home)
	r.POST("/new_chat", h.NewChat)
	r.POST("/ask", h.Ask)
	r.GET("/chats", h.ListChats)
	r.DELETE("/chats/:id", h.DeleteChat)
	r.PUT("/chats/:id/rename", h.RenameChat)
}

func (h *ChatHandler) Home(c *gin.Context) {
	c.File(h.indexFile)
}

func (h *ChatHandler) NewChat(c *gin.Context) {
	id, err := h.store.CreateSession(c.Request.Context())
	if err != nil {
		log.Printf("[ERROR] Create session failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"reply": "Error: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"chat_id": id, "title": "New Chat"})
}

// Ask orchestrates one chat turn: validate -> history -> search -> PDF ->
// compose -> generate -> history -> respond. Strictly sequential, no
// retries; resilience comes from each collaborator degrading on its own.
func (h *ChatHandler) Ask(c *gin.Context) {
	ctx := c.Request.Context()

	var message, chatID, pdfText string
	if c.ContentType() == "multipart/form-data" {
		message = strings.TrimSpace(c.PostForm("message"))
		chatID = c.PostForm("chat_id")

		if file, err := c.FormFile("file"); err == nil && service.IsPDFFilename(file.Filename) {
			opened, err := file.Open()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"reply": "Error: " + err.Error()})
				return
			}
			data, err := io.ReadAll(opened)
			opened.Close()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"reply": "Error: " + err.Error()})
				return
			}

			pdfText, err = service.ExtractPDFText(data)
			if err != nil {
				log.Printf("[ERROR] PDF extraction failed: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"reply": "Error: " + err.Error()})
				return
			}
			message = strings.TrimSpace(message+" ") + "[PDF content attached]"
		}
	} else {
		var req struct {
			Message string `json:"message"`
			ChatID  string `json:"chat_id"`
		}
		// 容忍空body，与空消息走同一个分支
		c.ShouldBindJSON(&req)
		message = strings.TrimSpace(req.Message)
		chatID = req.ChatID
	}

	if message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"reply": "Please enter a message."})
		return
	}

	if chatID == "" {
		id, err := h.store.CreateSession(ctx)
		if err != nil {
			log.Printf("[ERROR] Create session failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"reply": "Error: " + err.Error()})
			return
		}
		chatID = id
	}

	if err := h.store.AppendTurn(ctx, chatID, domain.RoleUser, message); err != nil {
		log.Printf("[ERROR] Append user turn failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"reply": "Error: " + err.Error()})
		return
	}

	webContext := h.search.Search(ctx, message)

	turns, err := h.store.RecentContext(ctx, chatID, 2*h.maxPairs)
	if err != nil {
		log.Printf("[WARN] Read context failed, continuing without it: %v", err)
		turns = nil
	}

	prompt := service.ComposePrompt(message, turns, webContext, pdfText)
	reply := h.generate.Generate(ctx, prompt)

	if err := h.store.AppendTurn(ctx, chatID, domain.RoleAssistant, reply.Text); err != nil {
		log.Printf("[WARN] Append assistant turn failed: %v", err)
	}

	resp := gin.H{
		"reply":   reply.Text,
		"chat_id": chatID,
		"title":   truncateTitle(message, 40),
	}
	if len(reply.Citations) > 0 {
		resp["citations"] = reply.Citations
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ChatHandler) ListChats(c *gin.Context) {
	summaries, err := h.store.ListSessions(c.Request.Context())
	if err != nil {
		log.Printf("[ERROR] List sessions failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"reply": "Error: " + err.Error()})
		return
	}

	out := gin.H{}
	for id, summary := range summaries {
		out[id] = gin.H{
			"title":    summary.Title,
			"messages": []string{}, // summary view only, history stays server-side
		}
	}
	c.JSON(http.StatusOK, out)
}

func (h *ChatHandler) DeleteChat(c *gin.Context) {
	if err := h.store.DeleteSession(c.Request.Context(), c.Param("id")); err != nil {
		log.Printf("[WARN] Delete session failed: %v", err)
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ChatHandler) RenameChat(c *gin.Context) {
	var req struct {
		Title string `json:"title" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.store.RenameSession(c.Request.Context(), c.Param("id"), req.Title); err != nil {
		log.Printf("[WARN] Rename session failed: %v", err)
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func truncateTitle(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen])
}
