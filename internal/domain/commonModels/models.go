package commonModels

type Document struct {
	Id          string     `json:"doc_id"`
	Name        string     `json:"doc_name"`
	ContentType DocType    `json:"content_type"`
	PageCount   int        `json:"page_count"`
	Chunks      []DocChunk `json:"chunks"`
}

type DocChunk struct {
	Index          int    `json:"index"`
	Chunk          string `json:"content"`
	PageNum        int    `json:"page_num"`
	ChunkPageOrder int    `json:"chunk_order"`
}

// Texts returns the chunk contents in document order.
func (d Document) Texts() []string {
	texts := make([]string, 0, len(d.Chunks))
	for _, c := range d.Chunks {
		texts = append(texts, c.Chunk)
	}
	return texts
}

type DocType string

var PDF DocType = "PDF"
var DOCX DocType = "DOCX"
var TXT DocType = "TXT"
var ERR DocType = "ERROR"
