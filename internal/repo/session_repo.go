package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/didi/gendry/builder"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/docchat/internal/model"
	"github.com/xxxsen/docchat/internal/pkg/dbutil"
)

// SessionRepo stores conversation history as one row per session with a flat
// jsonb list of messages: [q1, a1, q2, a2, ...]. The list is append-only.
type SessionRepo struct {
	db *sql.DB
}

func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Load returns the session's turns in order. An unknown session id yields an
// empty slice, not an error. An odd-length message list is self-healed by
// dropping the trailing unpaired message so questions are never paired with
// the wrong answers.
func (r *SessionRepo) Load(ctx context.Context, sessionID string) ([]model.Turn, error) {
	messages, err := r.loadMessages(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	turns := make([]model.Turn, 0, len(messages)/2)
	for i := 0; i+1 < len(messages); i += 2 {
		turns = append(turns, model.Turn{Question: messages[i], Answer: messages[i+1]})
	}
	return turns, nil
}

// Append adds one question/answer pair with a read-modify-write upsert.
// Concurrent appends to the same session id race and the last write wins;
// sessions are expected to be single-user, so this is not serialized.
func (r *SessionRepo) Append(ctx context.Context, sessionID, question, answer string) error {
	messages, err := r.loadMessages(ctx, sessionID)
	if err != nil {
		return err
	}
	messages = append(messages, question, answer)
	blob, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("encode session messages: %w", err)
	}
	now := time.Now().Unix()
	const query = `
		INSERT INTO chat_sessions (session_id, messages, ctime, mtime)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (session_id) DO UPDATE SET
			messages = EXCLUDED.messages,
			mtime = EXCLUDED.mtime
	`
	_, err = r.db.ExecContext(ctx, query, sessionID, string(blob), now, now)
	return err
}

// DeleteIdleBefore removes sessions whose last activity is older than cutoff
// and returns how many were removed.
func (r *SessionRepo) DeleteIdleBefore(ctx context.Context, cutoff int64) (int64, error) {
	const query = `DELETE FROM chat_sessions WHERE mtime < $1`
	res, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *SessionRepo) loadMessages(ctx context.Context, sessionID string) ([]string, error) {
	where := map[string]interface{}{
		"session_id": sessionID,
	}
	sqlStr, args, err := builder.BuildSelect("chat_sessions", where, []string{"messages"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	row := r.db.QueryRowContext(ctx, sqlStr, args...)
	var blob []byte
	if err := row.Scan(&blob); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	var messages []string
	if err := json.Unmarshal(blob, &messages); err != nil {
		return nil, fmt.Errorf("decode session messages: %w", err)
	}
	if len(messages)%2 != 0 {
		logutil.GetLogger(ctx).Warn("session has unpaired trailing message, dropping it",
			zap.String("session_id", sessionID),
			zap.Int("messages", len(messages)),
		)
		messages = messages[:len(messages)-1]
	}
	return messages, nil
}
