// internal/generator/blocks.go
package generator

// Helpers for building Notion block and property payloads.

func richText(content string) []map[string]interface{} {
	return []map[string]interface{}{
		{"type": "text", "text": map[string]interface{}{"content": content}},
	}
}

func heading1(content string) map[string]interface{} {
	return map[string]interface{}{
		"object":    "block",
		"type":      "heading_1",
		"heading_1": map[string]interface{}{"rich_text": richText(content)},
	}
}

func heading2(content string) map[string]interface{} {
	return map[string]interface{}{
		"object":    "block",
		"type":      "heading_2",
		"heading_2": map[string]interface{}{"rich_text": richText(content)},
	}
}

func paragraph(content string) map[string]interface{} {
	return map[string]interface{}{
		"object":    "block",
		"type":      "paragraph",
		"paragraph": map[string]interface{}{"rich_text": richText(content)},
	}
}

func bulletedItem(content string) map[string]interface{} {
	return map[string]interface{}{
		"object": "block",
		"type":   "bulleted_list_item",
		"bulleted_list_item": map[string]interface{}{
			"rich_text": richText(content),
		},
	}
}

func todoItem(content string) map[string]interface{} {
	return map[string]interface{}{
		"object": "block",
		"type":   "to_do",
		"to_do": map[string]interface{}{
			"rich_text": richText(content),
			"checked":   false,
		},
	}
}

func titleProperty(name string) map[string]interface{} {
	return map[string]interface{}{
		"title": map[string]interface{}{
			"title": richText(name),
		},
	}
}

func selectOptions(pairs ...[2]string) map[string]interface{} {
	options := make([]map[string]interface{}, 0, len(pairs))
	for _, p := range pairs {
		options = append(options, map[string]interface{}{"name": p[0], "color": p[1]})
	}
	return map[string]interface{}{
		"select": map[string]interface{}{"options": options},
	}
}
