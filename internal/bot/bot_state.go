package bot

type BotState int

const (
	StateDefault BotState = iota
	// открыт черновик занятия
	StateDrafting
	// ждём подтверждения закрытия
	StateConfirmingClose
)

type UserSession struct {
	State          BotState
	DraftSessionID string
	DraftClassID   string
}

func (b *Bot) getOrCreateSession(chatID int64) *UserSession {
	b.mu.Lock()
	defer b.mu.Unlock()

	if session, exists := b.userSessions[chatID]; exists {
		return session
	}

	session := &UserSession{State: StateDefault}
	b.userSessions[chatID] = session
	return session
}

// snapshot возвращает копию, чтобы не держать блокировку во время запросов к сервисам
func (b *Bot) snapshot(chatID int64) UserSession {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if session, exists := b.userSessions[chatID]; exists {
		return *session
	}
	return UserSession{State: StateDefault}
}

func (b *Bot) setState(chatID int64, fn func(s *UserSession)) {
	session := b.getOrCreateSession(chatID)
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(session)
}

func (b *Bot) resetSession(chatID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.userSessions, chatID)
}
