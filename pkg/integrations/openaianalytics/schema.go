package openaianalytics

import (
	"github.com/dandacompany/openai-analytics/pkg/domain"
)

var (
	Schema = schema

	schema domain.Integration = domain.Integration{
		ID:          domain.IntegrationType_OpenAIAnalytics,
		Name:        "OpenAI Analytics",
		Description: "Work with OpenAI assistants, threads, files and embeddings, classify text, repair JSON and generate HTML reports.",
		CredentialProperties: []domain.NodeProperty{
			{
				Key:         "api_key",
				Name:        "API Key",
				Description: "Your OpenAI API key. You can get this from your OpenAI dashboard",
				Required:    true,
				Type:        domain.NodePropertyType_String,
				IsSecret:    true,
			},
			{
				Key:         "organization_id",
				Name:        "Organization ID",
				Description: "Optional OpenAI organization to bill requests to",
				Type:        domain.NodePropertyType_String,
			},
			{
				Key:         "base_url",
				Name:        "Base URL",
				Description: "Override the API base URL for proxies or compatible providers",
				Type:        domain.NodePropertyType_String,
				Placeholder: "https://api.openai.com/v1",
				Advanced:    true,
			},
		},
		Actions: []domain.IntegrationAction{
			{
				ID:          "chat_completion",
				Name:        "Chat Completion",
				ActionType:  IntegrationActionType_ChatCompletion,
				Description: "Generate a chat completion from a prompt",
				Properties: []domain.NodeProperty{
					modelProperty("The chat model to use"),
					{
						Key:         "system_prompt",
						Name:        "System Prompt",
						Description: "Instructions that steer the model's behavior",
						Type:        domain.NodePropertyType_Text,
					},
					{
						Key:         "prompt",
						Name:        "Prompt",
						Description: "The user message to complete",
						Required:    true,
						Type:        domain.NodePropertyType_Text,
					},
					{
						Key:        "temperature",
						Name:       "Temperature",
						Type:       domain.NodePropertyType_Number,
						NumberOpts: &domain.NumberPropertyOptions{Min: 0, Max: 2, Step: 0.1},
					},
					{
						Key:         "max_tokens",
						Name:        "Max Tokens",
						Description: "Upper bound on generated tokens, 0 leaves it to the model",
						Type:        domain.NodePropertyType_Integer,
					},
					{
						Key:         "json_mode",
						Name:        "JSON Mode",
						Description: "Force the model to reply with a JSON object",
						Type:        domain.NodePropertyType_Boolean,
					},
					{
						Key:         "simplify_reply",
						Name:        "Simplify Output",
						Description: "Return only the reply text and token usage",
						Type:        domain.NodePropertyType_Boolean,
					},
				},
			},
			{
				ID:          "thread_create",
				Name:        "Create Thread",
				ActionType:  IntegrationActionType_CreateThread,
				Description: "Create a conversation thread, optionally with a first message",
				Properties: []domain.NodeProperty{
					{
						Key:  "initial_message",
						Name: "Initial Message",
						Type: domain.NodePropertyType_Text,
					},
				},
			},
			{
				ID:          "thread_get",
				Name:        "Get Thread",
				ActionType:  IntegrationActionType_GetThread,
				Description: "Retrieve a thread by ID",
				Properties: []domain.NodeProperty{
					threadIDProperty(),
				},
			},
			{
				ID:          "thread_add_message",
				Name:        "Add Message",
				ActionType:  IntegrationActionType_AddMessage,
				Description: "Append a message to an existing thread",
				Properties: []domain.NodeProperty{
					threadIDProperty(),
					{
						Key:  "role",
						Name: "Role",
						Type: domain.NodePropertyType_String,
						Options: []domain.NodePropertyOption{
							{Label: "User", Value: "user"},
							{Label: "Assistant", Value: "assistant"},
						},
					},
					{
						Key:      "content",
						Name:     "Content",
						Required: true,
						Type:     domain.NodePropertyType_Text,
					},
					{
						Key:          "file_ids",
						Name:         "File IDs",
						Description:  "Comma separated file IDs to attach",
						Type:         domain.NodePropertyType_String,
						Peekable:     true,
						PeekableType: OpenAIAnalyticsPeekable_Files,
					},
				},
			},
			{
				ID:          "thread_list_messages",
				Name:        "List Messages",
				ActionType:  IntegrationActionType_ListMessages,
				Description: "List the messages of a thread",
				Properties: []domain.NodeProperty{
					threadIDProperty(),
					{
						Key:        "limit",
						Name:       "Limit",
						Type:       domain.NodePropertyType_Integer,
						NumberOpts: &domain.NumberPropertyOptions{Min: 1, Max: 100, Default: 20},
					},
					{
						Key:         "simplify",
						Name:        "Simplify Output",
						Description: "Flatten messages to id, role, content and created_at",
						Type:        domain.NodePropertyType_Boolean,
					},
				},
			},
			{
				ID:          "thread_run",
				Name:        "Run Thread",
				ActionType:  IntegrationActionType_RunThread,
				Description: "Run an assistant on a thread, optionally waiting for the result",
				Properties: []domain.NodeProperty{
					threadIDProperty(),
					assistantIDProperty(),
					{
						Key:         "instructions",
						Name:        "Instructions",
						Description: "Extra instructions for this run only",
						Type:        domain.NodePropertyType_Text,
					},
					waitForCompletionProperty(),
					maxPollSecondsProperty(defaultRunPollSeconds),
				},
			},
			{
				ID:          "thread_check_run_status",
				Name:        "Check Run Status",
				ActionType:  IntegrationActionType_CheckRunStatus,
				Description: "Fetch the current status of a run",
				Properties: []domain.NodeProperty{
					threadIDProperty(),
					{
						Key:      "run_id",
						Name:     "Run ID",
						Required: true,
						Type:     domain.NodePropertyType_String,
					},
				},
			},
			{
				ID:          "thread_create_and_run",
				Name:        "Create Thread and Run",
				ActionType:  IntegrationActionType_CreateAndRunThread,
				Description: "Create a thread with messages and file attachments, then run an assistant on it",
				Properties: []domain.NodeProperty{
					assistantIDProperty(),
					{
						Key:         "initial_message",
						Name:        "Initial Message",
						Description: "Used when no message list is provided",
						Type:        domain.NodePropertyType_Text,
					},
					{
						Key:  "messages",
						Name: "Messages",
						Type: domain.NodePropertyType_Array,
						ArrayOpts: &domain.ArrayPropertyOptions{
							ItemType: domain.NodePropertyType_Map,
							ItemProperties: []domain.NodeProperty{
								{
									Key:      "role",
									Name:     "Role",
									Required: true,
									Type:     domain.NodePropertyType_String,
									Options: []domain.NodePropertyOption{
										{Label: "User", Value: "user"},
										{Label: "Assistant", Value: "assistant"},
									},
								},
								{
									Key:      "content",
									Name:     "Content",
									Required: true,
									Type:     domain.NodePropertyType_Text,
								},
							},
						},
					},
					{
						Key:         "files",
						Name:        "Files",
						Description: "Workspace files to upload and attach to the first message",
						Type:        domain.NodePropertyType_Array,
						ArrayOpts: &domain.ArrayPropertyOptions{
							ItemType: domain.NodePropertyType_File,
						},
					},
					{
						Key:          "file_ids",
						Name:         "Existing File IDs",
						Description:  "Already uploaded files to attach",
						Type:         domain.NodePropertyType_TagInput,
						Peekable:     true,
						PeekableType: OpenAIAnalyticsPeekable_Files,
					},
					{
						Key:         "upload_file_purpose",
						Name:        "Upload Purpose",
						Description: "Purpose for files uploaded by this action",
						Type:        domain.NodePropertyType_String,
						Options: []domain.NodePropertyOption{
							{Label: "Assistants", Value: "assistants"},
							{Label: "Fine-tune", Value: "fine-tune"},
						},
						Advanced: true,
					},
					{
						Key:  "instructions",
						Name: "Instructions",
						Type: domain.NodePropertyType_Text,
					},
					waitForCompletionProperty(),
					maxPollSecondsProperty(defaultCreateAndRunPollSeconds),
					{
						Key:         "simplify_output",
						Name:        "Simplify Output",
						Description: "Return flattened identifiers, timestamps and messages",
						Type:        domain.NodePropertyType_Boolean,
					},
				},
			},
			{
				ID:          "assistant_create",
				Name:        "Create Assistant",
				ActionType:  IntegrationActionType_CreateAssistant,
				Description: "Create an assistant with tools and resources",
				Properties: []domain.NodeProperty{
					modelProperty("The model the assistant uses"),
					{
						Key:  "name",
						Name: "Name",
						Type: domain.NodePropertyType_String,
					},
					{
						Key:  "description",
						Name: "Description",
						Type: domain.NodePropertyType_Text,
					},
					{
						Key:  "instructions",
						Name: "Instructions",
						Type: domain.NodePropertyType_Text,
					},
					{
						Key:        "temperature",
						Name:       "Temperature",
						Type:       domain.NodePropertyType_Number,
						NumberOpts: &domain.NumberPropertyOptions{Min: 0, Max: 2, Step: 0.1},
					},
					{
						Key:        "top_p",
						Name:       "Top P",
						Type:       domain.NodePropertyType_Number,
						NumberOpts: &domain.NumberPropertyOptions{Min: 0, Max: 1, Step: 0.05},
						Advanced:   true,
					},
					{
						Key:  "enable_code_interpreter",
						Name: "Enable Code Interpreter",
						Type: domain.NodePropertyType_Boolean,
					},
					{
						Key:  "enable_file_search",
						Name: "Enable File Search",
						Type: domain.NodePropertyType_Boolean,
					},
					{
						Key:         "functions",
						Name:        "Function Tools",
						Description: "Callable functions the assistant may request",
						Type:        domain.NodePropertyType_Array,
						ArrayOpts: &domain.ArrayPropertyOptions{
							ItemType: domain.NodePropertyType_Map,
							ItemProperties: []domain.NodeProperty{
								{
									Key:      "name",
									Name:     "Name",
									Required: true,
									Type:     domain.NodePropertyType_String,
								},
								{
									Key:  "description",
									Name: "Description",
									Type: domain.NodePropertyType_String,
								},
								{
									Key:          "parameters",
									Name:         "Parameter Schema",
									Description:  "JSON schema describing the function arguments",
									Type:         domain.NodePropertyType_CodeEditor,
									CodeLanguage: domain.CodeLanguageType_JSON,
								},
							},
						},
					},
					{
						Key:          "code_interpreter_file_ids",
						Name:         "Code Interpreter Files",
						Type:         domain.NodePropertyType_TagInput,
						Peekable:     true,
						PeekableType: OpenAIAnalyticsPeekable_Files,
						DependsOn: &domain.DependsOn{
							PropertyKey: "enable_code_interpreter",
							Value:       true,
						},
					},
					{
						Key:  "vector_store_ids",
						Name: "Vector Store IDs",
						Type: domain.NodePropertyType_TagInput,
						DependsOn: &domain.DependsOn{
							PropertyKey: "enable_file_search",
							Value:       true,
						},
					},
					{
						Key:  "response_format",
						Name: "Response Format",
						Type: domain.NodePropertyType_String,
						Options: []domain.NodePropertyOption{
							{Label: "Text", Value: "text"},
							{Label: "JSON Object", Value: "json_object"},
						},
						Advanced: true,
					},
				},
			},
			{
				ID:          "assistant_get",
				Name:        "Get Assistant",
				ActionType:  IntegrationActionType_GetAssistant,
				Description: "Retrieve an assistant by ID",
				Properties: []domain.NodeProperty{
					assistantIDProperty(),
				},
			},
			{
				ID:          "assistant_list",
				Name:        "List Assistants",
				ActionType:  IntegrationActionType_ListAssistants,
				Description: "List assistants in the organization",
				Properties: []domain.NodeProperty{
					{
						Key:        "limit",
						Name:       "Limit",
						Type:       domain.NodePropertyType_Integer,
						NumberOpts: &domain.NumberPropertyOptions{Min: 1, Max: 100, Default: 20},
					},
					orderProperty(),
				},
			},
			{
				ID:          "file_upload",
				Name:        "Upload File",
				ActionType:  IntegrationActionType_UploadFile,
				Description: "Upload a workspace file or base64 content to OpenAI",
				Properties: []domain.NodeProperty{
					{
						Key:         "file",
						Name:        "File",
						Description: "A file from a previous node",
						Type:        domain.NodePropertyType_File,
					},
					{
						Key:         "base64_content",
						Name:        "Base64 Content",
						Description: "Raw content to upload when no file is selected",
						Type:        domain.NodePropertyType_Text,
						Advanced:    true,
					},
					{
						Key:       "file_name",
						Name:      "File Name",
						Type:      domain.NodePropertyType_String,
						DependsOn: &domain.DependsOn{PropertyKey: "base64_content"},
					},
					{
						Key:  "purpose",
						Name: "Purpose",
						Type: domain.NodePropertyType_String,
						Options: []domain.NodePropertyOption{
							{Label: "Assistants", Value: "assistants"},
							{Label: "Fine-tune", Value: "fine-tune"},
							{Label: "Batch", Value: "batch"},
						},
					},
				},
			},
			{
				ID:          "file_get",
				Name:        "Get File",
				ActionType:  IntegrationActionType_GetFile,
				Description: "Retrieve file metadata by ID",
				Properties: []domain.NodeProperty{
					fileIDProperty(),
				},
			},
			{
				ID:          "file_list",
				Name:        "List Files",
				ActionType:  IntegrationActionType_ListFiles,
				Description: "List uploaded files with optional filtering",
				Properties: []domain.NodeProperty{
					{
						Key:         "purpose",
						Name:        "Purpose",
						Description: "Only list files with this purpose",
						Type:        domain.NodePropertyType_String,
					},
					orderProperty(),
					{
						Key:  "limit",
						Name: "Limit",
						Type: domain.NodePropertyType_Integer,
					},
				},
			},
			{
				ID:          "file_download",
				Name:        "Download File",
				ActionType:  IntegrationActionType_DownloadFile,
				Description: "Download a file's content into workspace storage",
				Properties: []domain.NodeProperty{
					fileIDProperty(),
				},
			},
			{
				ID:          "embedding_create",
				Name:        "Create Embedding",
				ActionType:  IntegrationActionType_CreateEmbedding,
				Description: "Embed a single text",
				Properties: []domain.NodeProperty{
					embeddingModelProperty(),
					{
						Key:      "text",
						Name:     "Text",
						Required: true,
						Type:     domain.NodePropertyType_Text,
					},
					dimensionsProperty(),
					{
						Key:         "include_usage",
						Name:        "Include Usage",
						Description: "Add token usage to the output",
						Type:        domain.NodePropertyType_Boolean,
					},
				},
			},
			{
				ID:          "embeddings_create",
				Name:        "Create Embeddings (Batch)",
				ActionType:  IntegrationActionType_CreateEmbeddings,
				Description: "Embed multiple texts in one request",
				Properties: []domain.NodeProperty{
					embeddingModelProperty(),
					{
						Key:      "texts",
						Name:     "Texts",
						Required: true,
						Type:     domain.NodePropertyType_TagInput,
					},
					dimensionsProperty(),
				},
			},
			{
				ID:          "embedding_classify",
				Name:        "Classify by Embedding",
				ActionType:  IntegrationActionType_EmbeddingClassify,
				Description: "Assign text to the closest category by embedding similarity",
				Properties: []domain.NodeProperty{
					{
						Key:      "text",
						Name:     "Text",
						Required: true,
						Type:     domain.NodePropertyType_Text,
					},
					categoriesProperty(),
					embeddingModelProperty(),
					{
						Key:         "threshold",
						Name:        "Threshold",
						Description: "Minimum similarity for a category to match",
						Type:        domain.NodePropertyType_Number,
						NumberOpts:  &domain.NumberPropertyOptions{Min: 0, Max: 1, Default: defaultClassifyThreshold, Step: 0.05},
					},
					{
						Key:         "multiple",
						Name:        "Multiple Categories",
						Description: "Return every category above the threshold instead of the single best",
						Type:        domain.NodePropertyType_Boolean,
					},
					{
						Key:         "cache_scope",
						Name:        "Cache Scope",
						Description: "Category embeddings are cached per scope and model",
						Type:        domain.NodePropertyType_String,
						Advanced:    true,
					},
					{
						Key:         "clear_cache",
						Name:        "Clear Cache",
						Description: "Drop cached category embeddings before classifying",
						Type:        domain.NodePropertyType_Boolean,
						Advanced:    true,
					},
					{
						Key:         "category_embeddings",
						Name:        "Category Embeddings",
						Description: "Precomputed embedding vector per category, used instead of calling the API",
						Type:        domain.NodePropertyType_Map,
						Advanced:    true,
					},
				},
			},
			{
				ID:          "llm_classify",
				Name:        "Classify by LLM",
				ActionType:  IntegrationActionType_LLMClassify,
				Description: "Ask a chat model to pick a category for the text",
				Properties: []domain.NodeProperty{
					{
						Key:      "text",
						Name:     "Text",
						Required: true,
						Type:     domain.NodePropertyType_Text,
					},
					categoriesProperty(),
					modelProperty("The chat model used to classify"),
					{
						Key:  "output_format",
						Name: "Output Format",
						Type: domain.NodePropertyType_String,
						Options: []domain.NodePropertyOption{
							{Label: "JSON", Value: "json", Description: "Structured verdict with confidence and reasoning"},
							{Label: "Text", Value: "text", Description: "Category name only"},
						},
					},
					{
						Key:         "instructions",
						Name:        "Extra Instructions",
						Description: "Appended to the classification prompt",
						Type:        domain.NodePropertyType_Text,
						Advanced:    true,
					},
				},
			},
			{
				ID:          "cosine_similarity",
				Name:        "Cosine Similarity",
				ActionType:  IntegrationActionType_CosineSimilarity,
				Description: "Compare two vectors or two texts",
				Properties: []domain.NodeProperty{
					{
						Key:      "input_mode",
						Name:     "Input Mode",
						Required: true,
						Type:     domain.NodePropertyType_String,
						Options: []domain.NodePropertyOption{
							{Label: "Vectors", Value: VectorInputMode_Direct},
							{Label: "Item Paths", Value: VectorInputMode_JSONPath},
							{Label: "Files", Value: VectorInputMode_File},
							{Label: "Embed Texts", Value: VectorInputMode_Embed},
						},
					},
					{
						Key:         "vector_a",
						Name:        "Vector A",
						Description: "JSON array or delimited number list",
						Type:        domain.NodePropertyType_Text,
						ShowIf:      &domain.ShowIf{PropertyKey: "input_mode", Values: []any{VectorInputMode_Direct}},
					},
					{
						Key:    "vector_b",
						Name:   "Vector B",
						Type:   domain.NodePropertyType_Text,
						ShowIf: &domain.ShowIf{PropertyKey: "input_mode", Values: []any{VectorInputMode_Direct}},
					},
					{
						Key:         "path_a",
						Name:        "Path A",
						Description: "Path into the item, for example data.embedding",
						Type:        domain.NodePropertyType_String,
						ShowIf:      &domain.ShowIf{PropertyKey: "input_mode", Values: []any{VectorInputMode_JSONPath}},
					},
					{
						Key:    "path_b",
						Name:   "Path B",
						Type:   domain.NodePropertyType_String,
						ShowIf: &domain.ShowIf{PropertyKey: "input_mode", Values: []any{VectorInputMode_JSONPath}},
					},
					{
						Key:         "file_a",
						Name:        "File A",
						Description: "Workspace file holding the vector as a JSON array or delimited number list",
						Type:        domain.NodePropertyType_File,
						ShowIf:      &domain.ShowIf{PropertyKey: "input_mode", Values: []any{VectorInputMode_File}},
					},
					{
						Key:    "file_b",
						Name:   "File B",
						Type:   domain.NodePropertyType_File,
						ShowIf: &domain.ShowIf{PropertyKey: "input_mode", Values: []any{VectorInputMode_File}},
					},
					{
						Key:    "text_a",
						Name:   "Text A",
						Type:   domain.NodePropertyType_Text,
						ShowIf: &domain.ShowIf{PropertyKey: "input_mode", Values: []any{VectorInputMode_Embed}},
					},
					{
						Key:    "text_b",
						Name:   "Text B",
						Type:   domain.NodePropertyType_Text,
						ShowIf: &domain.ShowIf{PropertyKey: "input_mode", Values: []any{VectorInputMode_Embed}},
					},
					{
						Key:          "model",
						Name:         "Embedding Model",
						Type:         domain.NodePropertyType_String,
						Peekable:     true,
						PeekableType: OpenAIAnalyticsPeekable_Models,
						ShowIf:       &domain.ShowIf{PropertyKey: "input_mode", Values: []any{VectorInputMode_Embed}},
					},
				},
			},
			{
				ID:          "text_parse_json",
				Name:        "Parse JSON",
				ActionType:  IntegrationActionType_ParseJSON,
				Description: "Extract and repair JSON from model output or other messy text",
				Properties: []domain.NodeProperty{
					{
						Key:      "text",
						Name:     "Text",
						Required: true,
						Type:     domain.NodePropertyType_Text,
					},
					{
						Key:         "extract_method",
						Name:        "Extract Method",
						Description: "Which extraction stage to use",
						Type:        domain.NodePropertyType_String,
						Options: []domain.NodePropertyOption{
							{Label: "Auto", Value: "auto", Description: "Try every stage in order"},
							{Label: "Full Parse", Value: RepairMethod_Full},
							{Label: "Balanced Scan", Value: RepairMethod_Balanced},
							{Label: "Regex", Value: RepairMethod_Regex},
						},
					},
					{
						Key:         "use_llm",
						Name:        "Repair with LLM",
						Description: "Ask a chat model to fix the JSON when local extraction fails",
						Type:        domain.NodePropertyType_Boolean,
					},
					{
						Key:          "model",
						Name:         "Repair Model",
						Type:         domain.NodePropertyType_String,
						Peekable:     true,
						PeekableType: OpenAIAnalyticsPeekable_Models,
						DependsOn:    &domain.DependsOn{PropertyKey: "use_llm", Value: true},
					},
				},
			},
			{
				ID:          "report_generate_html",
				Name:        "Generate HTML Report",
				ActionType:  IntegrationActionType_GenerateHTMLReport,
				Description: "Have a chat model write a standalone HTML report from your data",
				Properties: []domain.NodeProperty{
					{
						Key:         "prompt",
						Name:        "Report Prompt",
						Description: "What the report should cover",
						Required:    true,
						Type:        domain.NodePropertyType_Text,
					},
					{
						Key:         "input_text",
						Name:        "Input Data",
						Description: "The data the report is built from, passed to the model verbatim",
						Type:        domain.NodePropertyType_Text,
					},
					modelProperty("The chat model that writes the report"),
					{
						Key:         "title",
						Name:        "Title",
						Description: "Used for the report filename",
						Type:        domain.NodePropertyType_String,
					},
					{
						Key:         "include_default_libraries",
						Name:        "Include Default Libraries",
						Description: "Offer Bootstrap, Font Awesome and Chart.js to the model",
						Type:        domain.NodePropertyType_Boolean,
					},
					{
						Key:      "extra_css_libraries",
						Name:     "Extra CSS Libraries",
						Type:     domain.NodePropertyType_TagInput,
						Advanced: true,
					},
					{
						Key:      "extra_js_libraries",
						Name:     "Extra JS Libraries",
						Type:     domain.NodePropertyType_TagInput,
						Advanced: true,
					},
					{
						Key:        "temperature",
						Name:       "Temperature",
						Type:       domain.NodePropertyType_Number,
						NumberOpts: &domain.NumberPropertyOptions{Min: 0, Max: 2, Default: defaultReportTemperature, Step: 0.1},
						Advanced:   true,
					},
					{
						Key:        "max_tokens",
						Name:       "Max Tokens",
						Type:       domain.NodePropertyType_Integer,
						NumberOpts: &domain.NumberPropertyOptions{Min: 1, Default: defaultReportMaxTokens},
						Advanced:   true,
					},
					{
						Key:        "top_p",
						Name:       "Top P",
						Type:       domain.NodePropertyType_Number,
						NumberOpts: &domain.NumberPropertyOptions{Min: 0, Max: 1, Default: defaultReportTopP, Step: 0.05},
						Advanced:   true,
					},
				},
			},
		},
	}
)

func modelProperty(description string) domain.NodeProperty {
	return domain.NodeProperty{
		Key:          "model",
		Name:         "Model",
		Description:  description,
		Required:     true,
		Type:         domain.NodePropertyType_String,
		Peekable:     true,
		PeekableType: OpenAIAnalyticsPeekable_Models,
	}
}

func embeddingModelProperty() domain.NodeProperty {
	return domain.NodeProperty{
		Key:          "model",
		Name:         "Model",
		Description:  "The embedding model to use",
		Type:         domain.NodePropertyType_String,
		Placeholder:  defaultEmbeddingModel,
		Peekable:     true,
		PeekableType: OpenAIAnalyticsPeekable_Models,
	}
}

func threadIDProperty() domain.NodeProperty {
	return domain.NodeProperty{
		Key:      "thread_id",
		Name:     "Thread ID",
		Required: true,
		Type:     domain.NodePropertyType_String,
	}
}

func assistantIDProperty() domain.NodeProperty {
	return domain.NodeProperty{
		Key:          "assistant_id",
		Name:         "Assistant",
		Required:     true,
		Type:         domain.NodePropertyType_String,
		Peekable:     true,
		PeekableType: OpenAIAnalyticsPeekable_Assistants,
	}
}

func fileIDProperty() domain.NodeProperty {
	return domain.NodeProperty{
		Key:          "file_id",
		Name:         "File",
		Required:     true,
		Type:         domain.NodePropertyType_String,
		Peekable:     true,
		PeekableType: OpenAIAnalyticsPeekable_Files,
	}
}

func categoriesProperty() domain.NodeProperty {
	return domain.NodeProperty{
		Key:         "categories",
		Name:        "Categories",
		Description: "The category labels to classify into",
		Required:    true,
		Type:        domain.NodePropertyType_TagInput,
	}
}

func dimensionsProperty() domain.NodeProperty {
	return domain.NodeProperty{
		Key:         "dimensions",
		Name:        "Dimensions",
		Description: "Reduce the embedding to this many dimensions, 0 keeps the model default",
		Type:        domain.NodePropertyType_Integer,
		Advanced:    true,
	}
}

func orderProperty() domain.NodeProperty {
	return domain.NodeProperty{
		Key:  "order",
		Name: "Order",
		Type: domain.NodePropertyType_String,
		Options: []domain.NodePropertyOption{
			{Label: "Newest First", Value: "desc"},
			{Label: "Oldest First", Value: "asc"},
		},
	}
}

func waitForCompletionProperty() domain.NodeProperty {
	return domain.NodeProperty{
		Key:         "wait_for_completion",
		Name:        "Wait for Completion",
		Description: "Poll the run until it reaches a terminal status",
		Type:        domain.NodePropertyType_Boolean,
	}
}

func maxPollSecondsProperty(defaultSeconds float64) domain.NodeProperty {
	return domain.NodeProperty{
		Key:         "max_poll_seconds",
		Name:        "Max Poll Seconds",
		Description: "Give up waiting after this many seconds and return the last status",
		Type:        domain.NodePropertyType_Integer,
		NumberOpts:  &domain.NumberPropertyOptions{Min: 1, Max: 600, Default: defaultSeconds},
		DependsOn:   &domain.DependsOn{PropertyKey: "wait_for_completion", Value: true},
	}
}
