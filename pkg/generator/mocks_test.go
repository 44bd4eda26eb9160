package generator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shouni/effect-studio-kit/pkg/domain"
)

// --- Mocks ---

// mockAPI は StudioAPI のテスト用モックなのだ。呼び出し回数を数えるのだ。
type mockAPI struct {
	mu sync.Mutex

	uploadURLErr error
	putErr       error
	submitErr    error

	statuses  []domain.JobStatusResponse // 順に返すステータス。尽きたら最後の値を返し続けるのだ
	statusErr error

	proxyPayload  *domain.MediaPayload
	proxyErr      error
	directPayload *domain.MediaPayload
	directErr     error

	uploadURLCalls int
	putCalls       int
	submitCalls    int
	statusCalls    int
	proxyCalls     int
	directCalls    int

	lastFileName    string
	lastContentType string
	lastImageURL    string
	lastSettings    domain.JobSettings
}

func (m *mockAPI) totalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.uploadURLCalls + m.putCalls + m.submitCalls + m.statusCalls + m.proxyCalls + m.directCalls
}

func (m *mockAPI) RequestUploadURL(ctx context.Context, fileName string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploadURLCalls++
	m.lastFileName = fileName
	if m.uploadURLErr != nil {
		return "", m.uploadURLErr
	}
	return "https://storage.example.com/" + fileName + "?sig=1", nil
}

func (m *mockAPI) PutObject(ctx context.Context, signedURL, contentType string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putCalls++
	m.lastContentType = contentType
	return m.putErr
}

func (m *mockAPI) PublicURL(fileName string) string {
	return "https://contents.example.com/" + fileName
}

func (m *mockAPI) SubmitJob(ctx context.Context, imageURL string, settings domain.JobSettings) (*domain.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submitCalls++
	m.lastImageURL = imageURL
	m.lastSettings = settings
	if m.submitErr != nil {
		return nil, m.submitErr
	}
	return &domain.Job{ID: "job-1", Status: domain.JobQueued}, nil
}

func (m *mockAPI) FetchJobStatus(ctx context.Context, mode domain.GenerationMode, userID, jobID string) (*domain.JobStatusResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statusCalls++
	if m.statusErr != nil {
		return nil, m.statusErr
	}
	if len(m.statuses) == 0 {
		return nil, fmt.Errorf("no scripted status")
	}
	idx := m.statusCalls - 1
	if idx >= len(m.statuses) {
		idx = len(m.statuses) - 1
	}
	s := m.statuses[idx]
	return &s, nil
}

func (m *mockAPI) FetchViaProxy(ctx context.Context, mediaURL string) (*domain.MediaPayload, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.proxyCalls++
	return m.proxyPayload, m.proxyErr
}

func (m *mockAPI) FetchDirect(ctx context.Context, mediaURL string) (*domain.MediaPayload, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.directCalls++
	return m.directPayload, m.directErr
}

type stateChange struct {
	State   domain.DisplayState
	Message string
}

// mockView は View のテスト用モックなのだ。すべての表示遷移を記録するのだ。
type mockView struct {
	states         []stateChange
	previews       []string
	results        []string
	resultKinds    []domain.MediaKind
	errors         []error
	busy           []bool
	offered        []*domain.DownloadedFile
	manual         []string
	cleared        int
	offerDownloadE error
}

func (v *mockView) SetState(state domain.DisplayState, message string) {
	v.states = append(v.states, stateChange{State: state, Message: message})
}

func (v *mockView) ShowPreview(url string) { v.previews = append(v.previews, url) }

func (v *mockView) ShowResult(url string, kind domain.MediaKind) {
	v.results = append(v.results, url)
	v.resultKinds = append(v.resultKinds, kind)
}

func (v *mockView) ShowError(err error) { v.errors = append(v.errors, err) }

func (v *mockView) SetDownloadBusy(busy bool) { v.busy = append(v.busy, busy) }

func (v *mockView) OfferDownload(_ context.Context, file *domain.DownloadedFile) error {
	if v.offerDownloadE != nil {
		return v.offerDownloadE
	}
	v.offered = append(v.offered, file)
	return nil
}

func (v *mockView) ShowManualDownload(url string) { v.manual = append(v.manual, url) }

func (v *mockView) Clear() { v.cleared++ }

func (v *mockView) lastState() stateChange {
	if len(v.states) == 0 {
		return stateChange{}
	}
	return v.states[len(v.states)-1]
}

// recordingSleep は待機せずに要求された間隔を記録するのだ。
type recordingSleep struct {
	waits []time.Duration
}

func (r *recordingSleep) sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.waits = append(r.waits, d)
	return nil
}

func fixedID(id string) IDGenerator {
	return func(size int) (string, error) {
		if size < len(id) {
			return id[:size], nil
		}
		return id, nil
	}
}
