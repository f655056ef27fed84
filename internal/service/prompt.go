package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/shipits/recap/internal/model"
)

const summarySystemPrompt = `You summarize the discussion around a student project for mentors who skim dozens of projects a day.

Write a short plain-text summary of the activity transcript you are given. Cover what the project is about, the main topics raised in comments and updates, questions that are still waiting for an answer, and the overall tone of the discussion. Mention pinned comments and highly-reacted comments when they matter. Do not invent details that are not in the transcript, do not address the reader, and do not use markdown. Keep it under 200 words.`

// buildPrompt renders the project header and activity transcript into the
// user prompt for one generation. Indentation in the transcript carries the
// reply structure, so lines are joined verbatim.
func buildPrompt(project *model.Project, transcript []model.AnnotatedActivityItem) string {
	var sb strings.Builder

	sb.WriteString("# Project\n\n")
	sb.WriteString(fmt.Sprintf("**Title**: %s\n", project.Title))
	if project.Description != "" {
		sb.WriteString(fmt.Sprintf("**Description**: %s\n", project.Description))
	}
	if len(project.Tags) > 0 {
		sb.WriteString(fmt.Sprintf("**Tags**: %s\n", strings.Join(project.Tags, ", ")))
	}
	if project.Status != "" {
		sb.WriteString(fmt.Sprintf("**Status**: %s\n", project.Status))
	}
	if project.OwnerName != "" {
		sb.WriteString(fmt.Sprintf("**Owner**: %s\n", project.OwnerName))
	}
	if !project.CreatedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("**Created**: %s\n", project.CreatedAt.UTC().Format(time.RFC3339)))
	}

	sb.WriteString("\n# Activity\n\n")
	for _, item := range transcript {
		sb.WriteString(item.Display)
		sb.WriteString("\n")
	}

	return sb.String()
}
