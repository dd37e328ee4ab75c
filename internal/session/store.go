package session

import "sync"

// Mode é o contexto conversacional atual de um usuário.
type Mode int

const (
	// MainMenu é o estado inicial, aguardando uma seleção de menu.
	MainMenu Mode = iota
	// Topic indica que o usuário entrou em um tópico e as próximas
	// mensagens vão para o resolvedor.
	Topic
	// CollectingField indica um fluxo de coleta de dados em andamento.
	CollectingField
)

// Session é o estado conversacional de um único usuário. Scratch guarda os
// valores parciais do fluxo de coleta.
type Session struct {
	Mode    Mode
	TopicID string
	Field   string
	Scratch map[string]string
}

// Store guarda as sessões em memória, uma por usuário. As sessões não são
// persistidas: um restart do processo volta todo mundo para o menu.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	locks    map[string]*sync.Mutex
}

// NewStore cria um store vazio.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
		locks:    make(map[string]*sync.Mutex),
	}
}

// WithSession executa fn com a sessão do usuário, criando-a no menu
// principal no primeiro contato. As execuções para o mesmo usuário são
// serializadas, evitando transições perdidas em envios rápidos; usuários
// diferentes não se bloqueiam.
func (s *Store) WithSession(userID string, fn func(*Session)) {
	s.mu.Lock()
	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	sess, ok := s.sessions[userID]
	if !ok {
		sess = newSession()
		s.sessions[userID] = sess
	}
	s.mu.Unlock()

	lock.Lock()
	defer lock.Unlock()
	fn(sess)
}

// Reset volta a sessão do usuário para o menu principal.
func (s *Store) Reset(userID string) {
	s.WithSession(userID, func(sess *Session) {
		*sess = *newSession()
	})
}

func newSession() *Session {
	return &Session{Mode: MainMenu, Scratch: make(map[string]string)}
}

// ResetToMenu reinicia a própria sessão para o menu principal, limpando o
// rascunho do fluxo de coleta.
func (sess *Session) ResetToMenu() {
	sess.Mode = MainMenu
	sess.TopicID = ""
	sess.Field = ""
	sess.Scratch = make(map[string]string)
}
