package enrich

import "github.com/tmc/langchaingo/prompts"

const businessAnalysisTemplate = `
Analyze the following business information and provide insights about the business type,
target audience, and business model.

Business Information:
{{.business_text}}

Website Content:
{{.website_content}}

{{.format_instructions}}
`

const analysisFormatInstructions = `Respond with a single JSON object, no surrounding prose, with exactly these keys:
"business_type" (string), "main_offerings" (array of strings),
"target_audience" (string), "unique_selling_points" (array of strings),
"price_range" (string), "business_model" (string).`

var businessAnalysisPrompt = prompts.NewPromptTemplate(
	businessAnalysisTemplate,
	[]string{"business_text", "website_content", "format_instructions"},
)
