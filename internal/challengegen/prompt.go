package challengegen

import (
	"fmt"

	"coding_challenge_api/internal/model"
)

const systemPrompt = `You are an expert coding challenge creator.
Your task is to generate a coding question with multiple choice answers in Python.
The question should be appropriate for the specified difficulty level.

For easy questions: Focus on basic syntax, simple operations, or common programming concepts.
For medium questions: Cover intermediate concepts like data structures, algorithms, or language features.
For hard questions: Include advanced topics, design patterns, optimization techniques, or complex algorithms.

Return the challenge as a JSON object with this structure:
{
    "title": "The question title",
    "options": ["Option 1", "Option 2", "Option 3", "Option 4"],
    "correct_answer_id": 0,
    "explanation": "Detailed explanation of why the correct answer is right"
}

Make sure the options are plausible but with only one clearly correct answer.`

func userPrompt(difficulty model.Difficulty) string {
	return fmt.Sprintf("Generate a random %s-difficulty coding challenge in Python.", difficulty)
}
