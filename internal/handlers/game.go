package handlers

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"chess-rules/internal/audit"
	"chess-rules/internal/board"
	"chess-rules/internal/db"
	"chess-rules/internal/game"
	"chess-rules/internal/middleware"
	"chess-rules/internal/models"
	"chess-rules/internal/utils"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type GameHandler struct {
	db *db.MongoDB
	ws *WebSocketHandler
}

func NewGameHandler(database *db.MongoDB, wsHandler *WebSocketHandler) *GameHandler {
	return &GameHandler{db: database, ws: wsHandler}
}

// recordGamesPlayed bumps the gamesPlayed counter for every seated
// player with an account. Fire-and-forget, like audit logging.
func (h *GameHandler) recordGamesPlayed(players []models.Player) {
	for _, p := range players {
		if p.UserID == nil {
			continue
		}
		userID := *p.UserID
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			h.db.Users().UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$inc": bson.M{"gamesPlayed": 1}})
		}()
	}
}

type CreateGameRequest struct {
	DisplayName string `json:"displayName,omitempty"`
	// Setup seeds a non-standard position: square coordinates mapped to
	// "colour pieceType" descriptors, e.g. {"a3": "white king"}.
	Setup map[string]string `json:"setup,omitempty"`
}

type CreateGameResponse struct {
	SessionID string `json:"sessionId"`
	PlayerID  string `json:"playerId"`
	ShareLink string `json:"shareLink"`
}

type JoinGameResponse struct {
	SessionID string             `json:"sessionId"`
	PlayerID  string             `json:"playerId"`
	Color     models.PlayerColor `json:"color"`
	Game      *models.Game       `json:"game"`
}

type MakeMoveRequest struct {
	PlayerID string `json:"playerId"`
	From     string `json:"from"`
	To       string `json:"to"`
}

type MakeMoveResponse struct {
	Success    bool         `json:"success"`
	Move       *models.Move `json:"move,omitempty"`
	BoardState string       `json:"boardState"`
	Check      bool         `json:"check"`
	Checkmate  bool         `json:"checkmate"`
	Error      string       `json:"error,omitempty"`
}

type GetMovesResponse struct {
	Moves []models.Move `json:"moves"`
}

func generateID() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

func respondWithError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func colorOf(c board.Color) models.PlayerColor {
	if c == board.White {
		return models.White
	}
	return models.Black
}

func (h *GameHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req CreateGameRequest
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req) // empty body is fine
	}

	boardState := models.InitialBoardState
	if len(req.Setup) > 0 {
		ctrl, err := game.NewControllerFromSetup(req.Setup)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		boardState = ctrl.Encode()
	}

	displayName := req.DisplayName
	if displayName == "" {
		displayName = utils.GenerateDisplayName()
	}
	if user := middleware.UserFromContext(r.Context()); user != nil {
		displayName = user.DisplayName
	}

	sessionID := generateID()
	playerID := generateID()

	newGame := &models.Game{
		SessionID: sessionID,
		Players: []models.Player{{
			ID:          playerID,
			DisplayName: displayName,
			Color:       models.White,
			JoinedAt:    time.Now(),
		}},
		Status:      models.GameStatusWaiting,
		CurrentTurn: models.White,
		BoardState:  boardState,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if user := middleware.UserFromContext(r.Context()); user != nil {
		newGame.Players[0].UserID = &user.ID
	}

	if _, err := h.db.Games().InsertOne(ctx, newGame); err != nil {
		http.Error(w, "Failed to create game", http.StatusInternalServerError)
		return
	}

	audit.LogGameEvent(h.db, audit.EventGameCreated, sessionID, r, "")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CreateGameResponse{
		SessionID: sessionID,
		PlayerID:  playerID,
		ShareLink: "/game/" + sessionID,
	})
}

func (h *GameHandler) JoinGame(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	sessionID := mux.Vars(r)["sessionId"]

	var existingGame models.Game
	err := h.db.Games().FindOne(ctx, bson.M{"sessionId": sessionID}).Decode(&existingGame)
	if err != nil {
		http.Error(w, "Game not found", http.StatusNotFound)
		return
	}

	// Re-joining players get their existing seat back
	playerIDHeader := r.Header.Get("X-Player-ID")
	for _, p := range existingGame.Players {
		if p.ID == playerIDHeader {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(JoinGameResponse{
				SessionID: sessionID,
				PlayerID:  p.ID,
				Color:     p.Color,
				Game:      &existingGame,
			})
			return
		}
	}

	if len(existingGame.Players) >= 2 {
		http.Error(w, "Game is full", http.StatusBadRequest)
		return
	}

	playerID := generateID()
	newPlayer := models.Player{
		ID:          playerID,
		DisplayName: utils.GenerateDisplayName(),
		Color:       models.Black,
		JoinedAt:    time.Now(),
	}
	if user := middleware.UserFromContext(r.Context()); user != nil {
		newPlayer.UserID = &user.ID
		newPlayer.DisplayName = user.DisplayName
	}

	now := time.Now()
	update := bson.M{
		"$push": bson.M{"players": newPlayer},
		"$set": bson.M{
			"status":    models.GameStatusActive,
			"startedAt": now,
			"updatedAt": now,
		},
	}
	if _, err := h.db.Games().UpdateOne(ctx, bson.M{"sessionId": sessionID}, update); err != nil {
		http.Error(w, "Failed to join game", http.StatusInternalServerError)
		return
	}

	if err := h.db.Games().FindOne(ctx, bson.M{"sessionId": sessionID}).Decode(&existingGame); err != nil {
		http.Error(w, "Failed to fetch game", http.StatusInternalServerError)
		return
	}

	if h.ws != nil {
		h.ws.BroadcastPlayerJoined(sessionID, &existingGame)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(JoinGameResponse{
		SessionID: sessionID,
		PlayerID:  playerID,
		Color:     models.Black,
		Game:      &existingGame,
	})
}

func (h *GameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	sessionID := mux.Vars(r)["sessionId"]

	var existingGame models.Game
	err := h.db.Games().FindOne(ctx, bson.M{"sessionId": sessionID}).Decode(&existingGame)
	if err != nil {
		http.Error(w, "Game not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(existingGame)
}

func (h *GameHandler) MakeMove(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	sessionID := mux.Vars(r)["sessionId"]

	var req MakeMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var existingGame models.Game
	err := h.db.Games().FindOne(ctx, bson.M{"sessionId": sessionID}).Decode(&existingGame)
	if err != nil {
		http.Error(w, "Game not found", http.StatusNotFound)
		return
	}
	if existingGame.Status == models.GameStatusComplete || existingGame.Status == models.GameStatusAbandoned {
		respondWithError(w, http.StatusBadRequest, "Game is over")
		return
	}

	var player *models.Player
	for i := range existingGame.Players {
		if existingGame.Players[i].ID == req.PlayerID {
			player = &existingGame.Players[i]
			break
		}
	}
	if player == nil {
		respondWithError(w, http.StatusBadRequest, "Player not in game")
		return
	}
	if player.Color != existingGame.CurrentTurn {
		respondWithError(w, http.StatusBadRequest, "Not your turn")
		return
	}

	ctrl, err := game.Decode(existingGame.BoardState)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Invalid board state")
		return
	}

	// Remember the occupancy the move cares about before it mutates
	var captured bool
	var movedPiece string
	if from, perr := board.ParseSquare(req.From); perr == nil {
		if p := ctrl.Board().Get(from); p != nil {
			movedPiece = p.String()
		}
	}
	if to, perr := board.ParseSquare(req.To); perr == nil {
		captured = ctrl.Board().Get(to) != nil
	}

	if err := ctrl.Move(req.From, req.To); err != nil {
		if game.IsMoveRejected(err) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Move failed")
		return
	}

	// The mover is now the "other" player; their opponent may be in
	// check or mated.
	opponent := ctrl.CurrentPlayer()
	mated, isMate := ctrl.CheckMate()
	inCheck := ctrl.InCheck(opponent)

	move := &models.Move{
		GameID:     existingGame.ID,
		SessionID:  sessionID,
		PlayerID:   req.PlayerID,
		MoveNumber: existingGame.MoveCount + 1,
		From:       req.From,
		To:         req.To,
		Piece:      movedPiece,
		Capture:    captured,
		Check:      inCheck,
		Checkmate:  isMate,
		CreatedAt:  time.Now(),
	}
	if _, err := h.db.Moves().InsertOne(ctx, move); err != nil {
		http.Error(w, "Failed to record move", http.StatusInternalServerError)
		return
	}

	updateFields := bson.M{
		"boardState":  ctrl.Encode(),
		"currentTurn": colorOf(ctrl.CurrentPlayer()),
		"moveCount":   existingGame.MoveCount + 1,
		"updatedAt":   time.Now(),
	}
	if isMate {
		now := time.Now()
		updateFields["status"] = models.GameStatusComplete
		updateFields["winner"] = colorOf(mated.Opponent())
		updateFields["winReason"] = "checkmate"
		updateFields["completedAt"] = now
	}

	if _, err := h.db.Games().UpdateOne(ctx, bson.M{"sessionId": sessionID}, bson.M{"$set": updateFields}); err != nil {
		http.Error(w, "Failed to update game", http.StatusInternalServerError)
		return
	}

	if isMate {
		h.recordGamesPlayed(existingGame.Players)
	}

	if err := h.db.Games().FindOne(ctx, bson.M{"sessionId": sessionID}).Decode(&existingGame); err == nil && h.ws != nil {
		h.ws.BroadcastMove(sessionID, &existingGame, move, req.PlayerID)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(MakeMoveResponse{
		Success:    true,
		Move:       move,
		BoardState: ctrl.Encode(),
		Check:      inCheck,
		Checkmate:  isMate,
	})
}

func (h *GameHandler) GetMoves(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	sessionID := mux.Vars(r)["sessionId"]

	opts := options.Find().SetSort(bson.D{{Key: "moveNumber", Value: 1}})
	cursor, err := h.db.Moves().Find(ctx, bson.M{"sessionId": sessionID}, opts)
	if err != nil {
		http.Error(w, "Failed to fetch moves", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	moves := []models.Move{}
	if err := cursor.All(ctx, &moves); err != nil {
		http.Error(w, "Failed to decode moves", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(GetMovesResponse{Moves: moves})
}

type ResignRequest struct {
	PlayerID string `json:"playerId"`
}

func (h *GameHandler) ResignGame(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	sessionID := mux.Vars(r)["sessionId"]

	var req ResignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var existingGame models.Game
	err := h.db.Games().FindOne(ctx, bson.M{"sessionId": sessionID}).Decode(&existingGame)
	if err != nil {
		http.Error(w, "Game not found", http.StatusNotFound)
		return
	}
	if existingGame.Status != models.GameStatusActive {
		respondWithError(w, http.StatusBadRequest, "Game is not active")
		return
	}

	var resigning *models.Player
	for i := range existingGame.Players {
		if existingGame.Players[i].ID == req.PlayerID {
			resigning = &existingGame.Players[i]
			break
		}
	}
	if resigning == nil {
		respondWithError(w, http.StatusBadRequest, "Player not in game")
		return
	}

	winner := models.White
	if resigning.Color == models.White {
		winner = models.Black
	}

	now := time.Now()
	update := bson.M{"$set": bson.M{
		"status":      models.GameStatusComplete,
		"winner":      winner,
		"winReason":   "resignation",
		"completedAt": now,
		"updatedAt":   now,
	}}
	if _, err := h.db.Games().UpdateOne(ctx, bson.M{"sessionId": sessionID}, update); err != nil {
		http.Error(w, "Failed to resign game", http.StatusInternalServerError)
		return
	}

	audit.LogGameEvent(h.db, audit.EventGameResigned, sessionID, r, string(resigning.Color))
	h.recordGamesPlayed(existingGame.Players)

	if err := h.db.Games().FindOne(ctx, bson.M{"sessionId": sessionID}).Decode(&existingGame); err == nil && h.ws != nil {
		h.ws.BroadcastResignation(sessionID, &existingGame, string(resigning.Color), req.PlayerID)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(existingGame)
}
