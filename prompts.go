package treedex

import (
	"fmt"
	"strings"
)

// StructurePrompt asks the generator for a flat table of contents over
// the first window of tagged page text.
const StructurePrompt = `You are a document structure analyzer. Given the following document text with page index tags, extract the hierarchical structure (table of contents).

Return a JSON list of objects, each with:
- "path": hierarchical numbering like "1", "1.1", "1.2.3"
- "title": the section/chapter title
- "anchor": the page number (from the <page_N> tag) where this section starts

Rules:
- Use the <page_N> tags to determine page numbers
- Create a logical hierarchy: chapters -> sections -> subsections
- Every section must have a unique path
- Return ONLY valid JSON — no extra text`

// ContinuePrompt asks the generator to extend a partially extracted
// structure over the next window.
const ContinuePrompt = `You are continuing to extract the hierarchical structure of a document.

Now extract the structure from the next portion of the document. Continue the numbering from where the previous structure left off. If a section from the previous portion continues into this portion, do NOT duplicate it.

Return a JSON list of NEW sections only (same format as before: "path", "title", "anchor").`

// RetrievalPrompt asks the generator to select the nodes most relevant to
// a query given a structure-only view of the tree.
const RetrievalPrompt = `You are a document retrieval system. Given a document's tree structure and a user query, select the most relevant sections that would contain the answer.

Return a JSON object with:
- "node_ids": list of node ids (strings like "0001", "0005") that are most relevant to the query
- "reasoning": brief explanation of why these sections were selected

Select the smallest set of sections that fully covers the answer. Prefer leaf nodes over parent nodes when the leaf contains the specific content. Return ONLY valid JSON.`

// AnswerPrompt asks the generator to answer from retrieved context only.
const AnswerPrompt = `You are a knowledgeable assistant. Answer the user's question based ONLY on the provided context. Be accurate, concise, and helpful.

If the context does not contain enough information to answer the question, say so clearly.`

// BuildStructurePrompt creates the full prompt for the first window.
func BuildStructurePrompt(windowText string) string {
	var sb strings.Builder
	sb.WriteString(StructurePrompt)
	sb.WriteString("\n\nDocument text:\n")
	sb.WriteString(windowText)
	sb.WriteString("\n\nJSON output:\n")
	return sb.String()
}

// BuildContinuePrompt creates the prompt for a follow-up window,
// embedding the structure accumulated from all prior windows.
func BuildContinuePrompt(previousJSON, windowText string) string {
	var sb strings.Builder
	sb.WriteString(ContinuePrompt)
	sb.WriteString("\n\nStructure extracted so far:\n")
	sb.WriteString(previousJSON)
	sb.WriteString("\n\nDocument text:\n")
	sb.WriteString(windowText)
	sb.WriteString("\n\nJSON output:\n")
	return sb.String()
}

// BuildRetrievalPrompt creates the node-selection prompt.
func BuildRetrievalPrompt(treeJSON, query string) string {
	var sb strings.Builder
	sb.WriteString(RetrievalPrompt)
	sb.WriteString("\n\nDocument structure:\n")
	sb.WriteString(treeJSON)
	sb.WriteString(fmt.Sprintf("\n\nUser query: %s\n\nJSON output:\n", query))
	return sb.String()
}

// BuildAnswerPrompt creates the answering prompt over retrieved context.
func BuildAnswerPrompt(contextText, query string) string {
	var sb strings.Builder
	sb.WriteString(AnswerPrompt)
	sb.WriteString("\n\nContext:\n")
	sb.WriteString(contextText)
	sb.WriteString(fmt.Sprintf("\n\nQuestion: %s\n\nAnswer:\n", query))
	return sb.String()
}
