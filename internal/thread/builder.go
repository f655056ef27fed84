// Package thread turns the forum's flat comment rows into the ordered,
// annotated transcript that summary generation consumes.
package thread

import (
	"fmt"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shipits/recap/internal/model"
)

const indentPerLevel = "  "

// Node is a comment with its resolved replies.
type Node struct {
	Comment model.Comment
	Replies []*Node
}

// BuildHierarchy resolves flat comment rows into a forest. Replies attach to
// their parent in input order; ordering between siblings is decided at
// flatten time. A reply whose parent is not in the set is excluded from the
// forest and returned as an orphan so the caller can log it; everything
// beneath an orphan drops with it.
func BuildHierarchy(comments []model.Comment) ([]*Node, []model.Comment) {
	nodes := make(map[primitive.ObjectID]*Node, len(comments))
	for _, c := range comments {
		nodes[c.ID] = &Node{Comment: c}
	}

	var roots []*Node
	var orphans []model.Comment
	for _, c := range comments {
		if !c.IsReply() {
			roots = append(roots, nodes[c.ID])
			continue
		}
		parent, ok := nodes[*c.ParentID]
		if !ok {
			orphans = append(orphans, c)
			continue
		}
		parent.Replies = append(parent.Replies, nodes[c.ID])
	}

	return roots, orphans
}

// FlattenForDisplay linearizes a comment forest: pinned roots first, then the
// rest in ascending creation order, each root immediately followed by its
// replies depth-first, siblings in ascending creation order.
func FlattenForDisplay(roots []*Node) []model.AnnotatedActivityItem {
	return MergeTimeline(roots, nil)
}

// MergeTimeline produces the combined activity transcript for a project.
// Pinned comment roots lead in ascending creation order; unpinned roots and
// project updates then share a single ascending-creation-time sequence, with
// comments winning timestamp ties. Every comment root keeps its flattened
// subtree immediately after it, so a reply is never separated from the
// discussion it belongs to, no matter when it was written.
func MergeTimeline(roots []*Node, updates []model.ProjectUpdate) []model.AnnotatedActivityItem {
	var pinned, unpinned []*Node
	for _, n := range roots {
		if n.Comment.Pinned {
			pinned = append(pinned, n)
		} else {
			unpinned = append(unpinned, n)
		}
	}
	sortNodes(pinned)
	sortNodes(unpinned)

	sorted := make([]model.ProjectUpdate, len(updates))
	copy(sorted, updates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	items := make([]model.AnnotatedActivityItem, 0, len(roots)+len(updates))
	for _, n := range pinned {
		items = appendSubtree(items, n, 0)
	}

	ci, ui := 0, 0
	for ci < len(unpinned) && ui < len(sorted) {
		if sorted[ui].CreatedAt.Before(unpinned[ci].Comment.CreatedAt) {
			items = append(items, updateItem(sorted[ui]))
			ui++
			continue
		}
		items = appendSubtree(items, unpinned[ci], 0)
		ci++
	}
	for ; ci < len(unpinned); ci++ {
		items = appendSubtree(items, unpinned[ci], 0)
	}
	for ; ui < len(sorted); ui++ {
		items = append(items, updateItem(sorted[ui]))
	}

	return items
}

func appendSubtree(items []model.AnnotatedActivityItem, n *Node, depth int) []model.AnnotatedActivityItem {
	items = append(items, model.AnnotatedActivityItem{
		Kind:        model.ActivityKindComment,
		Display:     commentLine(n.Comment, depth),
		Depth:       depth,
		CreatedAt:   n.Comment.CreatedAt,
		HasChildren: len(n.Replies) > 0,
	})

	replies := make([]*Node, len(n.Replies))
	copy(replies, n.Replies)
	sortNodes(replies)
	for _, r := range replies {
		items = appendSubtree(items, r, depth+1)
	}

	return items
}

// sortNodes orders siblings by creation time, keeping input order on ties.
func sortNodes(nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Comment.CreatedAt.Before(nodes[j].Comment.CreatedAt)
	})
}

// commentLine renders one comment as a transcript line. Markers appear in a
// fixed order so the completion model sees a stable grammar.
func commentLine(c model.Comment, depth int) string {
	var sb strings.Builder
	sb.WriteString(strings.Repeat(indentPerLevel, depth))
	sb.WriteString(c.AuthorName)
	if c.Type != "" && c.Type != model.CommentTypeGeneral {
		fmt.Fprintf(&sb, " [%s]", strings.ToUpper(string(c.Type)))
	}
	if c.Pinned {
		sb.WriteString(" [PINNED]")
	}
	if c.IsQuestion {
		sb.WriteString(" [QUESTION]")
	}
	if c.IsAnswered {
		sb.WriteString(" [ANSWERED]")
	}
	if c.ReactionCount > 0 {
		fmt.Fprintf(&sb, " (%d reactions)", c.ReactionCount)
	}
	sb.WriteString(": ")
	sb.WriteString(c.Content)
	return sb.String()
}

func updateItem(u model.ProjectUpdate) model.AnnotatedActivityItem {
	return model.AnnotatedActivityItem{
		Kind:      model.ActivityKindUpdate,
		Display:   fmt.Sprintf("[UPDATE] %s: %s", u.Title, u.Body),
		CreatedAt: u.CreatedAt,
	}
}
