// internal/assess/prompts.go
package assess

import "fmt"

// inspectorSystemPrompt frames every assessment call. The confidence
// tiers it declares are what the gating logic later trusts.
const inspectorSystemPrompt = `You are an expert factory safety inspector analyzing hazard photos.

ANALYSIS FOCUS:
- Identify visible safety issues/hazards (electrical, mechanical, chemical, ergonomic, etc.)
- Determine the specific location within the facility
- Note severity and immediate risks
- Suggest corrective actions

CONFIDENCE RULES:
- High confidence (>80%): clear, obvious hazards with sufficient detail
- Medium confidence (50-80%): some uncertainty about specifics
- Low confidence (<50%): unclear image, missing context, or ambiguous hazards

OUTPUT REQUIREMENTS:
- Be specific and safety-focused
- Use technical safety terminology when appropriate
- Prioritize worker safety above all else

RESPONSE FORMAT: Always return valid JSON only.`

const singlePassSystemPrompt = inspectorSystemPrompt + `

Your task:
1. Identify visible safety issues/hazards
2. Propose bounding boxes for hazards (x, y, width, height as percentages 0-100)
3. Fill three fields: issue, location, note

If you can clearly identify specific hazards with high confidence, provide direct answers.
If confidence is low or critical information is missing, generate a clarifying question instead.

OUTPUT FORMAT - Always respond with valid JSON only:
{
    "confidence_level": "high|medium|low",
    "mode": "auto_fill|follow_up_question",
    "issue": "specific safety issue or null if asking question",
    "location": "specific location in facility or null if asking question",
    "note": "additional safety details or null if asking question",
    "bounding_boxes": [{"x": 0, "y": 0, "width": 0, "height": 0, "label": "hazard description"}],
    "capa": "corrective and preventive action recommendation",
    "follow_up_question": "clarifying question if mode is follow_up_question, otherwise null"
}

Be precise and safety-focused. Only auto-fill if you are highly confident.`

const singlePassUserPrompt = "Analyze this factory image for safety hazards and follow the confidence-based output format."

const initialAnalysisPrompt = `TASK: Analyze this factory image and generate ONE specific follow-up question that would help you provide a more accurate safety assessment.

OUTPUT FORMAT (JSON only):
{
    "initial_analysis": "brief description of what you see",
    "confidence_level": "high|medium|low",
    "follow_up_question": "one specific question to improve accuracy",
    "reasoning": "why this question would help"
}`

// finalRoundPrompt folds the clarifying answer back into the second
// call. The question and answer are restated verbatim.
func finalRoundPrompt(question, answer string) string {
	return fmt.Sprintf(`CONTEXT: You previously analyzed this image and asked: %q
ANSWER GIVEN: %q

TASK: Now provide your final safety assessment.

OUTPUT FORMAT (JSON only):
{
    "issue": "specific safety issue/hazard",
    "location": "specific location in facility",
    "note": "additional safety details and severity",
    "confidence_level": "high|medium|low",
    "capa": "corrective and preventive action recommendation"
}`, question, answer)
}
