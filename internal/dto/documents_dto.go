package dto

// DocumentCategories are the accepted values for a document's category.
var DocumentCategories = []string{"performance_review", "report", "presentation", "other"}

// UpdateDocumentRequest is a partial metadata update for a document; the
// stored object itself is immutable.
type UpdateDocumentRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
}

func (r UpdateDocumentRequest) Record() map[string]any {
	record := map[string]any{}
	if r.Title != nil {
		record["title"] = *r.Title
	}
	if r.Description != nil {
		record["description"] = *r.Description
	}
	if r.Category != nil {
		record["category"] = *r.Category
	}
	return record
}

// DocumentRecord is the documents row shape this service writes and reads.
type DocumentRecord struct {
	ID         string `json:"id"`
	TeamID     string `json:"team_id"`
	FilePath   string `json:"file_path"`
	BucketName string `json:"bucket_name"`
}
