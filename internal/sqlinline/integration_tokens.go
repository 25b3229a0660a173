package sqlinline

// QSelectIntegrationToken returns the stored key for a model provider.
// Blank tokens are treated as absent.
const QSelectIntegrationToken = `--sql 8a8e0d52-7f5d-4f21-8b7d-f7d4b821eed7
select t.token
from integration_tokens t
where t.provider = lower($1::text)
  and btrim(t.token) <> ''
order by t.updated_at desc
limit 1;
`

// QUpsertIntegrationToken stores one key per provider. Properties are merged
// on update.
const QUpsertIntegrationToken = `--sql 6d4f5660-0f7c-4f73-a1f3-9ab6d5e6c7a3
insert into integration_tokens (id, provider, token, properties)
values (gen_random_uuid(), lower($1::text), btrim($2::text), coalesce($3::jsonb, '{}'::jsonb))
on conflict (provider) do update
set token = excluded.token,
    properties = integration_tokens.properties || excluded.properties,
    updated_at = now();
`
