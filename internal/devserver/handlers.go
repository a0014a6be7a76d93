package devserver

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bytedance/gg/gslice"
	"github.com/bytedance/sonic"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/gabriel-vasile/mimetype"

	"github.com/tgifai/chatwidget/internal/pkg/logs"
	"github.com/tgifai/chatwidget/pkg/widget"
)

// chatRequest is the JSON body accepted on {prefix}/anonymous/chat.
type chatRequest struct {
	Message     string              `json:"message"`
	ChatbotID   string              `json:"chatbotId"`
	SessionID   string              `json:"sessionId"`
	Attachments []widget.Attachment `json:"attachments"`
}

func errorBody(message string) utils.H {
	return utils.H{"success": false, "message": message, "timestamp": time.Now().UnixMilli()}
}

func successBody(message string) utils.H {
	return utils.H{"success": true, "message": message, "timestamp": time.Now().UnixMilli()}
}

func (s *Server) handleUpload(ctx context.Context, c *app.RequestContext) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(consts.StatusBadRequest, errorBody("File is required"))
		return
	}
	chatbotID := strings.TrimSpace(c.PostForm("chatbotId"))
	sessionID := strings.TrimSpace(c.PostForm("sessionId"))

	logs.CtxInfo(ctx, "[devserver] upload request: file=%s chatbot=%s session=%s size=%d",
		fh.Filename, chatbotID, sessionID, fh.Size)

	switch {
	case fh.Size == 0:
		c.JSON(consts.StatusBadRequest, errorBody("File is empty"))
		return
	case chatbotID == "":
		c.JSON(consts.StatusBadRequest, errorBody("chatbotId is required"))
		return
	case sessionID == "":
		c.JSON(consts.StatusBadRequest, errorBody("sessionId is required"))
		return
	case fh.Size > int64(s.cfg.MaxUploadMiB)<<20:
		c.JSON(consts.StatusRequestEntityTooLarge,
			errorBody(fmt.Sprintf("File exceeds %d MiB", s.cfg.MaxUploadMiB)))
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(consts.StatusInternalServerError, errorBody("Failed to read file: "+err.Error()))
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(consts.StatusInternalServerError, errorBody("Failed to read file: "+err.Error()))
		return
	}

	meta := s.store.Put(chatbotID, sessionID, fh.Filename, mimeOf(fh.Header.Get("Content-Type"), data), data)
	logs.CtxInfo(ctx, "[devserver] stored %s as %s", meta.FileName, meta.FileID)
	c.JSON(consts.StatusCreated, meta)
}

func (s *Server) handleDownload(ctx context.Context, c *app.RequestContext) {
	fileID := c.Param("fileId")
	meta, content, ok := s.store.Get(c.Query("chatbotId"), fileID)
	if !ok {
		logs.CtxWarn(ctx, "[devserver] file not found for download: %s", fileID)
		c.JSON(consts.StatusNotFound, errorBody("File not found: "+fileID))
		return
	}

	c.Response.Header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", meta.FileName))
	c.Data(consts.StatusOK, meta.MimeType, content)
}

func (s *Server) handleMetadata(ctx context.Context, c *app.RequestContext) {
	fileID := c.Param("fileId")
	meta, _, ok := s.store.Get(c.Query("chatbotId"), fileID)
	if !ok {
		c.JSON(consts.StatusNotFound, errorBody("File not found: "+fileID))
		return
	}
	c.JSON(consts.StatusOK, meta)
}

// handleListFiles serves /api/attachments/list/:chatbotId, the summary view
// of the upload store.
func (s *Server) handleListFiles(ctx context.Context, c *app.RequestContext) {
	chatbotID := c.Param("chatbotId")
	files := s.store.List(chatbotID)
	c.JSON(consts.StatusOK, utils.H{
		"chatbotId":  chatbotID,
		"totalFiles": len(files),
		"files":      files,
	})
}

// handleDeleteFile serves DELETE /api/attachments/:fileId?chatbotId=.
func (s *Server) handleDeleteFile(ctx context.Context, c *app.RequestContext) {
	s.deleteFile(ctx, c, c.Query("chatbotId"), c.Param("fileId"))
}

func (s *Server) handleChat(ctx context.Context, c *app.RequestContext) {
	var req chatRequest
	if err := sonic.Unmarshal(c.GetRequest().Body(), &req); err != nil {
		c.JSON(consts.StatusBadRequest, errorBody("invalid request body"))
		return
	}
	if strings.TrimSpace(req.ChatbotID) == "" {
		c.JSON(consts.StatusBadRequest, errorBody("chatbotId is required"))
		return
	}

	logs.CtxDebug(ctx, "[devserver] chat -> (%s/%s) %s files=%v", req.ChatbotID, req.SessionID,
		req.Message, gslice.Map(req.Attachments, func(a widget.Attachment) string { return a.Name }))

	resp := widget.Response{Success: true}
	if len(req.Attachments) > 0 {
		resp.VectorIDMap = make(map[string]string, len(req.Attachments))
		resp.VectorAttachments = make([]any, 0, len(req.Attachments))
	}
	for _, a := range req.Attachments {
		data, err := a.Decode()
		if err != nil {
			c.JSON(consts.StatusBadRequest, errorBody(err.Error()))
			return
		}
		meta := s.store.Put(req.ChatbotID, req.SessionID, a.Name, mimeOf(a.Type, data), data)
		resp.VectorIDMap[a.Name] = meta.FileID
		resp.VectorAttachments = append(resp.VectorAttachments, meta)
	}
	resp.Result = fmt.Sprintf("Received %q with %d attachment(s)", req.Message, len(req.Attachments))

	body, err := sonic.Marshal(resp)
	if err != nil {
		c.JSON(consts.StatusInternalServerError, errorBody("encode response: "+err.Error()))
		return
	}
	c.SetStatusCode(consts.StatusOK)
	c.SetContentType("application/json")
	c.Response.SetBody(body)
}

// handleList serves {prefix}/attachments/:chatbotId as a bare JSON array.
func (s *Server) handleList(ctx context.Context, c *app.RequestContext) {
	c.JSON(consts.StatusOK, s.store.List(c.Param("chatbotId")))
}

func (s *Server) handleDelete(ctx context.Context, c *app.RequestContext) {
	s.deleteFile(ctx, c, c.Param("chatbotId"), c.Param("vectorId"))
}

func (s *Server) deleteFile(ctx context.Context, c *app.RequestContext, chatbotID, fileID string) {
	if !s.store.Delete(chatbotID, fileID) {
		logs.CtxWarn(ctx, "[devserver] delete miss: chatbot=%s file=%s", chatbotID, fileID)
		c.JSON(consts.StatusNotFound, errorBody("File not found: "+fileID))
		return
	}
	logs.CtxInfo(ctx, "[devserver] deleted %s for %s", fileID, chatbotID)
	c.JSON(consts.StatusOK, successBody("File deleted successfully"))
}

// mimeOf keeps a declared type unless it is missing or the generic binary
// type, in which case the content is sniffed.
func mimeOf(declared string, data []byte) string {
	declared = strings.TrimSpace(declared)
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	return mimetype.Detect(data).String()
}
