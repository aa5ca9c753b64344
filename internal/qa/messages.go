package qa

// Fixed user-facing outcomes. Clarification and not-found are designed
// first-class results, not errors: clarification means the question was
// not understood confidently, not-found means it was understood but the
// book does not cover it.
const (
	ClarifyUr  = "براہِ کرم اپنا سوال واضح کریں۔"
	ClarifyEn  = "Please clarify your question."
	NotFoundUr = "اس کتاب میں اس کا واضح ذکر موجود نہیں۔"
	NotFoundEn = "This book does not mention this explicitly."
)
