package model

// CrawlStats summarizes one crawl run.
type CrawlStats struct {
	ResourcesDiscovered int `json:"resources_discovered"`
	ResourcesDetailed   int `json:"resources_detailed"`
	FilesGenerated      int `json:"files_generated"`
	Errors              int `json:"errors"`
}

// CrawlResult is the write-once summary of one crawl run. Only an index
// fetch failure flips Success to false; all other failures show up as
// lower counts.
type CrawlResult struct {
	Resources         []Resource `json:"resources"`
	DetailedResources []Resource `json:"detailed_resources"`
	GeneratedFiles    []string   `json:"generated_files"`
	Stats             CrawlStats `json:"stats"`
	Success           bool       `json:"success"`
	Error             string     `json:"error,omitempty"`
}
