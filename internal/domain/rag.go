package domain

// ChatMessage is one conversation turn, client-retained and replayed on each
// query for multi-turn context.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChunkMetadata is persisted alongside each vector. Text must reproduce the
// chunk verbatim so answers can cite it.
type ChunkMetadata struct {
	Filename    string `json:"filename"`
	FileID      string `json:"fileId"`
	ChunkIndex  int    `json:"chunkIndex"`
	Text        string `json:"text"`
	FileType    string `json:"fileType"`
	FileSize    int64  `json:"fileSize"`
	UploadDate  string `json:"uploadDate"`
	Department  string `json:"department"`
	ChunkLength int    `json:"chunkLength"`
}

// VectorRecord is the unit stored in the vector index.
type VectorRecord struct {
	ID       string
	Values   []float32
	Metadata ChunkMetadata
}

// Match is a similarity-query hit, highest score first as returned by the store.
type Match struct {
	ID       string
	Score    float64
	Metadata ChunkMetadata
}

type IndexStats struct {
	TotalVectors int64
	Dimension    int
}

// UploadedFile describes one file already written to the upload directory.
type UploadedFile struct {
	Path         string
	OriginalName string
	StoredName   string
	MimeType     string
	Size         int64
}

type FileResult struct {
	Filename string `json:"filename"`
	FileSize int64  `json:"fileSize,omitempty"`
	Chunks   int    `json:"chunks,omitempty"`
	Vectors  int    `json:"vectors,omitempty"`
	Status   string `json:"status"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
}

const (
	FileStatusSuccess = "success"
	FileStatusError   = "error"
)

type UploadSummary struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

type ChatRequest struct {
	Message             string
	Department          string
	ConversationHistory []ChatMessage
}

type Source struct {
	Filename   string  `json:"filename"`
	Score      float64 `json:"score"`
	Department string  `json:"department"`
}

const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
	ConfidenceNone   = "none"
)

type ChatResult struct {
	Response           string
	Sources            []Source
	ContextUsed        bool
	RelevantChunks     int
	TotalSearchResults int
	ConfidenceLevel    string
}
