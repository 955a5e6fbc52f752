package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"mindwell/internal/assessment"
	"mindwell/internal/auth"
	"mindwell/internal/chat"
	"mindwell/internal/emotion"
	"mindwell/internal/mood"
	"mindwell/internal/users"

	"github.com/sirupsen/logrus"
)

type Handler struct {
	userService       *users.Service
	chatService       *chat.Service
	moodService       *mood.Service
	assessmentService *assessment.Service
	jwtSigningKey     string
}

func NewHandler(
	userService *users.Service,
	chatService *chat.Service,
	moodService *mood.Service,
	assessmentService *assessment.Service,
	jwtKey string,
) *Handler {
	return &Handler{
		userService:       userService,
		chatService:       chatService,
		moodService:       moodService,
		assessmentService: assessmentService,
		jwtSigningKey:     jwtKey,
	}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type SendMessageRequest struct {
	Message string `json:"message"`
}

type FeedbackRequest struct {
	MessageID  int64 `json:"message_id"`
	IsPositive *bool `json:"is_positive"`
}

type MoodRequest struct {
	Emotion   string  `json:"emotion"`
	Intensity float64 `json:"intensity"`
}

func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Метод не разрешен", http.StatusMethodNotAllowed)
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Некорректное тело запроса", http.StatusBadRequest)
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "Имя пользователя, email и пароль обязательны", http.StatusBadRequest)
		return
	}

	user, err := h.userService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrUserAlreadyExists):
			http.Error(w, "Пользователь с таким именем уже существует", http.StatusConflict)
		case errors.Is(err, users.ErrEmailAlreadyExists):
			http.Error(w, "Пользователь с таким email уже существует", http.StatusConflict)
		default:
			logrus.Errorf("Ошибка регистрации пользователя '%s': %v", req.Username, err)
			http.Error(w, "Ошибка при регистрации пользователя", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusCreated, UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}

func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Метод не разрешен", http.StatusMethodNotAllowed)
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Некорректное тело запроса", http.StatusBadRequest)
		return
	}

	if req.Username == "" || req.Password == "" {
		http.Error(w, "Имя пользователя и пароль обязательны", http.StatusBadRequest)
		return
	}

	user, err := h.userService.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			http.Error(w, "Неверное имя пользователя или пароль", http.StatusUnauthorized)
		} else {
			logrus.Errorf("Ошибка аутентификации пользователя '%s': %v", req.Username, err)
			http.Error(w, "Ошибка аутентификации", http.StatusInternalServerError)
		}
		return
	}

	tokenString, err := auth.GenerateJWTToken(user.ID, h.jwtSigningKey, 24*time.Hour)
	if err != nil {
		logrus.Errorf("Ошибка генерации JWT токена: %v", err)
		http.Error(w, "Ошибка при генерации токена", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{Token: tokenString})
}

func (h *Handler) SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Метод не разрешен", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Не удалось определить пользователя", http.StatusUnauthorized)
		return
	}

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Некорректное тело запроса", http.StatusBadRequest)
		return
	}

	result, err := h.chatService.HandleTurn(r.Context(), userID, req.Message)
	if err != nil {
		if errors.Is(err, chat.ErrEmptyMessage) {
			http.Error(w, "Сообщение обязательно", http.StatusBadRequest)
		} else {
			logrus.Errorf("Ошибка обработки сообщения пользователя %d: %v", userID, err)
			http.Error(w, "Ошибка обработки сообщения", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) FeedbackHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Метод не разрешен", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Не удалось определить пользователя", http.StatusUnauthorized)
		return
	}

	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Некорректное тело запроса", http.StatusBadRequest)
		return
	}

	if req.MessageID == 0 || req.IsPositive == nil {
		http.Error(w, "Некорректные данные оценки", http.StatusBadRequest)
		return
	}

	if err := h.chatService.SetFeedback(r.Context(), req.MessageID, userID, *req.IsPositive); err != nil {
		if errors.Is(err, chat.ErrMessageNotFound) {
			http.Error(w, "Сообщение не найдено или недоступно для оценки", http.StatusNotFound)
		} else {
			logrus.Errorf("Ошибка сохранения оценки сообщения %d: %v", req.MessageID, err)
			http.Error(w, "Ошибка сохранения оценки", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) ChatHistoryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Метод не разрешен", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Не удалось определить пользователя", http.StatusUnauthorized)
		return
	}

	history, err := h.chatService.GetChatHistory(r.Context(), userID)
	if err != nil {
		logrus.Errorf("Ошибка получения истории чата пользователя %d: %v", userID, err)
		http.Error(w, "Ошибка получения истории чата", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, history)
}

func (h *Handler) SubmitAssessmentHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Метод не разрешен", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Не удалось определить пользователя", http.StatusUnauthorized)
		return
	}

	var answers map[string]int
	if err := json.NewDecoder(r.Body).Decode(&answers); err != nil {
		http.Error(w, "Некорректное тело запроса", http.StatusBadRequest)
		return
	}

	submitted, err := h.assessmentService.Submit(r.Context(), userID, answers)
	if err != nil {
		if errors.Is(err, assessment.ErrInvalidAnswers) {
			http.Error(w, "Анкета должна содержать ответы q1-q7 со значениями от 1 до 5", http.StatusBadRequest)
		} else {
			logrus.Errorf("Ошибка сохранения анкеты пользователя %d: %v", userID, err)
			http.Error(w, "Ошибка сохранения анкеты", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":         submitted.ID,
		"score":      submitted.Score,
		"created_at": submitted.CreatedAt,
	})
}

func (h *Handler) AssessmentHistoryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Метод не разрешен", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Не удалось определить пользователя", http.StatusUnauthorized)
		return
	}

	assessments, err := h.assessmentService.History(r.Context(), userID)
	if err != nil {
		logrus.Errorf("Ошибка получения истории анкет пользователя %d: %v", userID, err)
		http.Error(w, "Ошибка получения истории анкет", http.StatusInternalServerError)
		return
	}

	type historyItem struct {
		ID      string         `json:"id"`
		Date    string         `json:"date"`
		Score   float64        `json:"score"`
		Answers map[string]int `json:"answers"`
	}

	history := make([]historyItem, 0, len(assessments))
	for _, item := range assessments {
		answers, err := item.GetAnswers()
		if err != nil {
			logrus.Errorf("Ошибка декодирования ответов анкеты %s: %v", item.ID, err)
			http.Error(w, "Ошибка получения истории анкет", http.StatusInternalServerError)
			return
		}
		history = append(history, historyItem{
			ID:      item.ID,
			Date:    item.CreatedAt.Format("2006-01-02"),
			Score:   item.Score,
			Answers: answers,
		})
	}

	writeJSON(w, http.StatusOK, history)
}

func (h *Handler) RecordMoodHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Метод не разрешен", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Не удалось определить пользователя", http.StatusUnauthorized)
		return
	}

	var req MoodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Некорректное тело запроса", http.StatusBadRequest)
		return
	}

	if !isKnownEmotion(req.Emotion) {
		http.Error(w, "Неизвестная эмоция", http.StatusBadRequest)
		return
	}

	recordID, err := h.moodService.RecordEmotion(r.Context(), userID, req.Emotion, req.Intensity)
	if err != nil {
		if errors.Is(err, mood.ErrInvalidIntensity) {
			http.Error(w, "Интенсивность должна быть от 0 до 1", http.StatusBadRequest)
		} else {
			logrus.Errorf("Ошибка записи настроения пользователя %d: %v", userID, err)
			http.Error(w, "Ошибка записи настроения", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":        recordID,
		"emotion":   req.Emotion,
		"intensity": req.Intensity,
	})
}

func (h *Handler) MoodHistoryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Метод не разрешен", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Не удалось определить пользователя", http.StatusUnauthorized)
		return
	}

	days := 30
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, "Некорректный параметр days", http.StatusBadRequest)
			return
		}
		days = parsed
	}

	records, err := h.moodService.GetMoodHistory(r.Context(), userID, days)
	if err != nil {
		logrus.Errorf("Ошибка получения истории настроения пользователя %d: %v", userID, err)
		http.Error(w, "Ошибка получения истории настроения", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, records)
}

// DashboardHandler отдаёт сводку для дашборда: средний балл анкет
// и суммарную интенсивность эмоций по дням.
func (h *Handler) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Метод не разрешен", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Не удалось определить пользователя", http.StatusUnauthorized)
		return
	}

	averageScore, err := h.assessmentService.AverageScore(r.Context(), userID)
	if err != nil {
		logrus.Errorf("Ошибка вычисления среднего балла пользователя %d: %v", userID, err)
		http.Error(w, "Ошибка получения данных дашборда", http.StatusInternalServerError)
		return
	}

	moodSummary, err := h.moodService.GetMoodSummary(r.Context(), userID, 30)
	if err != nil {
		logrus.Errorf("Ошибка получения сводки настроения пользователя %d: %v", userID, err)
		http.Error(w, "Ошибка получения данных дашборда", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"avg_score":    averageScore,
		"emotion_data": moodSummary,
	})
}

func (h *Handler) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Метод не разрешен", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Не удалось определить пользователя", http.StatusUnauthorized)
		return
	}

	user, err := h.userService.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			http.Error(w, "Пользователь не найден", http.StatusNotFound)
		} else {
			logrus.Errorf("Ошибка получения профиля пользователя %d: %v", userID, err)
			http.Error(w, "Ошибка получения профиля", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}

func isKnownEmotion(label string) bool {
	for _, known := range emotion.Labels() {
		if string(known) == label {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.Errorf("Ошибка сериализации ответа: %v", err)
	}
}
