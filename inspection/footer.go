package inspection

// DefaultAttribution is the footer text of documents produced for users
// without an active subscription.
const DefaultAttribution = "Powered by " + DefaultOrganization

// DefaultOrganization is the issuer named on documents without white-label
// branding.
const DefaultOrganization = "The AI Bureau + Safety Lines"

// FooterPolicy selects what the footer of every page shows.
// The zero value is the watermarked policy.
type FooterPolicy struct {
	branded     bool
	companyText string
}

// BrandedFooter returns the white-label policy. An empty text draws an empty
// footer line.
func BrandedFooter(companyText string) FooterPolicy {
	return FooterPolicy{branded: true, companyText: companyText}
}

// WatermarkFooter returns the policy that prints DefaultAttribution.
func WatermarkFooter() FooterPolicy {
	return FooterPolicy{}
}

// ResolveFooter applies the subscription rule: white-label only for
// subscribed users that configured company info or a company logo.
func ResolveFooter(subscribed bool, companyInfo string, hasCompanyLogo bool) FooterPolicy {
	if subscribed && (companyInfo != "" || hasCompanyLogo) {
		return BrandedFooter(companyInfo)
	}
	return WatermarkFooter()
}

// Branded reports whether the policy is the white-label one.
func (p FooterPolicy) Branded() bool { return p.branded }

// Text returns the footer string for the policy, given the attribution to use
// for watermarked documents.
func (p FooterPolicy) Text(attribution string) string {
	if p.branded {
		return p.companyText
	}
	return attribution
}

// Organization returns the issuer label shown in the page header.
func (p FooterPolicy) Organization() string {
	if p.branded && p.companyText != "" {
		return p.companyText
	}
	return DefaultOrganization
}

func (p FooterPolicy) String() string {
	if p.branded {
		return "branded"
	}
	return "watermarked"
}
