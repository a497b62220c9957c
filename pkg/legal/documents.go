// Package legal holds the static legal texts shown in the signup form modal.
package legal

import (
	"errors"
	"fmt"
	"strings"
)

// Document identifies a legal text the modal can show
type Document string

const (
	None       Document = ""
	Terms      Document = "terms"
	NDA        Document = "nda"
	Guidelines Document = "guidelines"
)

// Documents lists every openable document in display order
var Documents = []Document{Terms, NDA, Guidelines}

var ErrUnknownDocument = errors.New("unknown legal document")

// Text is the title and body of one legal document
type Text struct {
	Title string
	Body  string
}

// ParseDocument maps a document identifier to a Document. "none" and the
// empty string parse to None.
func ParseDocument(name string) (Document, error) {
	switch d := Document(strings.ToLower(strings.TrimSpace(name))); d {
	case Terms, NDA, Guidelines:
		return d, nil
	case None, "none":
		return None, nil
	default:
		return None, fmt.Errorf("%w: %q", ErrUnknownDocument, name)
	}
}

// String returns the identifier, "none" for None
func (d Document) String() string {
	if d == None {
		return "none"
	}
	return string(d)
}

// Lookup returns the text for d.
func Lookup(d Document) (Text, error) {
	t, ok := texts[d]
	if !ok {
		return Text{}, fmt.Errorf("%w: %q", ErrUnknownDocument, string(d))
	}
	return t, nil
}

var texts = map[Document]Text{
	Terms: {
		Title: "Terms & Conditions",
		Body: `Welcome to Nurse Moves! Please read these Terms and Conditions ("Terms") carefully before using our services.

1. ACCEPTANCE OF TERMS
By accessing or using our app, website, or related services, you agree to be bound by these Terms. If you do not agree, please discontinue use immediately.

2. ELIGIBILITY
You must be at least 18 years old or the age of majority in your jurisdiction to use Nurse Moves. By using our services, you represent that you meet this requirement.

3. USER ACCOUNT
• You are responsible for maintaining the confidentiality of your login credentials.
• You agree to provide accurate and up-to-date information.
• Any unauthorized use of your account must be reported immediately.

4. USE OF SERVICES
• Nurse Moves provides wellness and professional development tools for nurses and healthcare workers.
• You agree not to misuse the platform, including any attempt to reverse-engineer, distribute harmful software, or access restricted areas.

5. INTELLECTUAL PROPERTY
All content, logos, designs, data, and materials within Nurse Moves are owned or licensed by Nurse Moves LLC. You may not reproduce, distribute, or modify any part of the platform without prior written consent.

6. DATA PRIVACY
Your personal information is handled in accordance with our Privacy Policy. We take reasonable measures to protect your data, but you acknowledge that no digital system is 100% secure.

7. LIMITATION OF LIABILITY
Nurse Moves is not liable for any indirect, incidental, or consequential damages arising from your use or inability to use the platform.

8. MEDICAL DISCLAIMER
Content within Nurse Moves is for wellness support and educational purposes only and should not replace professional medical advice, diagnosis, or treatment.

9. TERMINATION
We may suspend or terminate access to your account at any time for breach of these Terms or misuse of the platform.

10. GOVERNING LAW
These Terms shall be governed by the laws of Illinois, USA. Any disputes shall be resolved under the exclusive jurisdiction of Illinois courts.

11. UPDATES
Nurse Moves reserves the right to modify these Terms at any time. Continued use after updates constitutes acceptance.

Effective Date: January 1, 2025`,
	},
	NDA: {
		Title: "Beta Tester NDA",
		Body: `NON-DISCLOSURE, NON-COMPETE, AND INTELLECTUAL PROPERTY AGREEMENT (EMPLOYEE / BETA TESTER)
This Agreement is entered into on [Date] by and between Protect Your Temple Fitness LLC d/b/a Nurse Moves ("Company" or "Nurse Moves"), incorporated under the laws of Illinois, USA, with principal offices at 159 N. Sangamon Ave, Chicago, IL 60607, and [Employee or Beta Tester Name], residing at [Address] ("Participant").

1. PURPOSE
This Agreement governs the protection of all confidential, proprietary, and sensitive business, technical, and user-related information disclosed or accessed by the Participant during their engagement with Nurse Moves.

2. DEFINITIONS
• Confidential Information includes all business, technical, financial, product, and strategic information (including user data, healthcare data, wireframes, source code, trade secrets, pricing, marketing plans, and internal operations).
• Work Product means all deliverables, inventions, writings, designs, algorithms, and intellectual property created or suggested during participation.

3. OBLIGATIONS OF CONFIDENTIALITY
Participant shall:
a. Keep all Confidential Information strictly confidential and not disclose it to any third party.
b. Use Confidential Information solely for the benefit of Nurse Moves.
c. Not reproduce, reverse engineer, or derive competing products from Confidential Information.
d. Notify Nurse Moves immediately upon any unauthorized disclosure or security concern.

4. NON-COMPETE AND NON-SOLICITATION
For eighteen (18) months following termination or completion of the beta program, Participant shall not:
a. Engage with competing apps or services related to healthcare or wellness technology within North America.
b. Solicit Nurse Moves' users, contractors, or clients for any competing purpose.

5. INTELLECTUAL PROPERTY AND OWNERSHIP
a. All Work Product created or suggested under this program shall be the exclusive property of Nurse Moves.
b. Participant irrevocably assigns all rights and interests to Nurse Moves.
c. Participant agrees not to use any proprietary assets or ideas developed here for future commercial gain without written consent.

6. DATA HANDLING AND SECURITY
• Participant must protect all user or company data received during testing.
• No screenshots, screen recordings, or public discussions of internal features are permitted.
• Any discovered vulnerabilities must be reported privately to Nurse Moves.

7. TERMINATION AND RETURN OF MATERIALS
Upon program completion or upon request, Participant shall return or permanently delete all Nurse Moves data and materials.

8. GOVERNING LAW
This Agreement shall be governed by and construed in accordance with the laws of Illinois, USA.

9. ADDITIONAL CLAUSES
• Participation in the beta program does not establish employment.
• No compensation, unless otherwise stated, is guaranteed for participation.
• Violation of this NDA may result in removal from the program and legal action.

10. ACKNOWLEDGMENT
By continuing participation, the Participant acknowledges having read, understood, and agreed to all terms of this Agreement.`,
	},
	Guidelines: {
		Title: "Community Guidelines",
		Body: `The NurseMoves Beta community is a space for nurses supporting nurses.

1. BE RESPECTFUL
Treat every member with kindness. Harassment, discrimination, and personal attacks are not tolerated.

2. PROTECT PATIENT PRIVACY
Never share protected health information, patient identifiers, or details that could identify a patient or facility.

3. KEEP BETA CONTENT CONFIDENTIAL
Features, screenshots, and discussions inside the beta stay inside the beta until public release.

4. SHARE HONEST FEEDBACK
Tell us what works and what does not. Constructive feedback shapes the app for every nurse.

5. NO MEDICAL ADVICE
Wellness content is educational. Do not give or request individual medical advice in the community.

6. REPORT CONCERNS
Report abusive content or security issues privately to the NurseMoves team.

Members who break these guidelines may be removed from the beta program.`,
	},
}
