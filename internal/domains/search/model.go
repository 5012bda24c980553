package search

import bookmodel "readerpeak-backend/internal/domains/book/model"

// ResultsState is what a results page renders: the query that produced
// the results, echoed back so the view can display it. A zero value
// renders as an explicit empty state.
type ResultsState struct {
	Query   string           `json:"query"`
	Results []bookmodel.Book `json:"results"`
}

func NewResultsState(query string, results []bookmodel.Book) ResultsState {
	if results == nil {
		results = []bookmodel.Book{}
	}
	return ResultsState{Query: query, Results: results}
}
